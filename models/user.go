package models

import (
	"time"
)

// Role enum
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// User model - admins, teachers and students share one table
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Username  string    `gorm:"column:username;uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"column:password;not null" json:"-"`
	Role      Role      `gorm:"column:role;not null;index" json:"role"`
	Email     string    `gorm:"column:email" json:"email"`
	Phone     string    `gorm:"column:phone" json:"phone"`
	Address   string    `gorm:"column:address" json:"address"`
	BirthDate *string   `gorm:"column:birth_date" json:"birthDate,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
	Active    bool      `gorm:"column:active;default:true" json:"active"`
}

func (User) TableName() string {
	return "users"
}
