package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/FakhrezaAldino/app-sipandu-sub000/config"
	"github.com/FakhrezaAldino/app-sipandu-sub000/handlers"
	"github.com/FakhrezaAldino/app-sipandu-sub000/middlewares"
	"github.com/FakhrezaAldino/app-sipandu-sub000/models"
)

// Register menyambungkan seluruh route HTTP.
func Register(e *echo.Echo, cfg *config.Config) {
	// ===== Handlers (singleton bersama) =====
	auth := handlers.NewAuthHandler(cfg.JWTSecret)
	kel := handlers.NewKelompokHandler()
	kpm := handlers.NewKPMHandler()
	abs := handlers.NewAbsensiHandler()
	lap := handlers.NewLaporanHandler()
	dash := handlers.NewDashboardHandler()
	akun := handlers.NewPendampingAccountHandler()

	// ===== Publik =====
	e.GET("/health", handlers.Health)
	e.POST("/auth/login", auth.Login)

	// ===== Terproteksi =====
	authMW := middlewares.RequireAuth(cfg.JWTSecret)

	// profil: cukup terautentikasi, role apa pun
	me := e.Group("/auth", authMW)
	me.GET("/me", auth.Me)
	me.PUT("/password", auth.ChangePassword)

	// ===== Pendamping (admin ikut boleh) =====
	pen := e.Group("", authMW, middlewares.RequireRole(models.RolePendamping, models.RoleAdmin))

	pen.GET("/kelompok", kel.List)
	pen.POST("/kelompok", kel.Create)
	pen.GET("/kelompok/:id", kel.Get)
	pen.PUT("/kelompok/:id", kel.Update)
	pen.DELETE("/kelompok/:id", kel.Delete)

	pen.GET("/kelompok/:id/kpm", kpm.List)
	pen.POST("/kelompok/:id/kpm", kpm.Create)
	pen.PUT("/kpm/:id", kpm.Update)
	pen.POST("/kpm/:id/graduasi", kpm.Graduasi)
	pen.GET("/kpm/:id/graduasi", kpm.RiwayatGraduasi)

	// absensi bulanan: lookup per periode, form rekonsiliasi, create/update
	pen.GET("/kelompok/:id/absensi", abs.GetByPeriode)
	pen.GET("/kelompok/:id/absensi/form", abs.Form)
	pen.GET("/kelompok/:id/absensi/riwayat", abs.Riwayat)
	pen.POST("/kelompok/:id/absensi", abs.Create)
	pen.PATCH("/absensi/:id", abs.Update)

	// laporan usaha/capaian/masalah
	pen.GET("/laporan/:jenis", lap.List)
	pen.POST("/laporan/:jenis", lap.Create)
	pen.PUT("/laporan/:jenis/:id", lap.Update)
	pen.DELETE("/laporan/:jenis/:id", lap.Delete)

	pen.GET("/pendamping/dashboard", dash.Pendamping)

	// ===== Admin =====
	admin := e.Group("/admin", authMW, middlewares.RequireRole(models.RoleAdmin))

	admin.GET("/dashboard", dash.Admin)

	admin.GET("/pendamping", akun.List)
	admin.POST("/pendamping", akun.Create)
	admin.POST("/pendamping/:id/reset", akun.ResetPassword)
	admin.PATCH("/pendamping/:id", akun.Patch)
}
