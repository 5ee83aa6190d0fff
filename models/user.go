package models

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

type User struct {
	ID           string     `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"not null" json:"name"`
	Email        string     `gorm:"unique;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	Role         Role       `gorm:"type:VARCHAR(20);default:'customer'" json:"role"`
	Status       UserStatus `gorm:"type:VARCHAR(20);default:'active'" json:"status"`
	Orders       []Order    `gorm:"foreignKey:UserID" json:"orders,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
