package main

import (
	"log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/FakhrezaAldino/app-sipandu-sub000/config"
	"github.com/FakhrezaAldino/app-sipandu-sub000/database"
	"github.com/FakhrezaAldino/app-sipandu-sub000/routes"
)

func main() {
	cfg := config.Load()

	// kalau DB belum siap, langsung gagal di sini
	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	routes.Register(e, cfg)

	addr := ":" + cfg.AppPort
	log.Printf("sipandu listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
