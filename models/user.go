package models

import "time"

const (
	RoleAdmin      = "admin"
	RolePendamping = "pendamping"
)

type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Nama         string `json:"nama" gorm:"size:120;not null"`
	Username     string `json:"username" gorm:"uniqueIndex;size:60;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;size:120;not null"`
	PasswordHash string `json:"-" gorm:"not null"` // bcrypt
	Role         string `json:"role" gorm:"size:20;not null"` // "admin" | "pendamping"
	Aktif        bool   `json:"aktif" gorm:"not null;default:true"`

	LastLogin          *time.Time `json:"last_login"`
	LastPasswordChange *time.Time `json:"last_password_change"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
