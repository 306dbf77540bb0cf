package users

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Статусы аккаунта хранятся в базе как есть, строками продукта.
const (
	StatusActive  = "активен"
	StatusBlocked = "заблокирован"
)

type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"unique;not null"`
	Email          string    `json:"email" gorm:"unique;not null"`
	Password       string    `json:"-" gorm:"not null"`
	GithubUsername *string   `json:"github_username" gorm:"uniqueIndex"`
	GithubToken    string    `json:"-"`
	Avatar         string    `json:"avatar"`
	Skills         string    `json:"skills"`
	Role           string    `json:"role" gorm:"not null;default:user"`
	IsBlocked      string    `json:"isBlocked" gorm:"not null;default:'активен'"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"-"`
}
