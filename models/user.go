package models

import "time"

const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

type User struct {
	ID           uint       `gorm:"primaryKey"              json:"id"`
	Username     string     `gorm:"uniqueIndex;size:120"    json:"username"`
	FullName     string     `gorm:"size:180"                json:"full_name"`
	PasswordHash string     `gorm:"size:255"                json:"-"` // never sent to clients
	Role         string     `gorm:"size:20;default:STAFF"   json:"role"`
	IsActive     bool       `gorm:"default:true"            json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
