package models

import (
	"time"
)

// DefaultProfileImage is assigned to users and campaigns created without an image
const DefaultProfileImage = "https://placehold.co/150x150"

// User represents a platform user identified by a wallet address
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	WalletAddress string    `gorm:"size:255;not null;index" json:"wallet_address"`
	Username      *string   `gorm:"size:150;uniqueIndex" json:"username"`
	Email         *string   `gorm:"size:254;uniqueIndex" json:"email"`
	Name          *string   `gorm:"size:255" json:"name"`
	Bio           *string   `gorm:"type:text" json:"bio"`
	Facebook      *string   `gorm:"size:255" json:"facebook"`
	Twitter       *string   `gorm:"size:255" json:"twitter"`
	Image         *string   `gorm:"size:500;default:https://placehold.co/150x150" json:"image"`
	IsActive      bool      `gorm:"not null" json:"is_active"`
	DateJoined    time.Time `gorm:"autoCreateTime" json:"date_joined"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// DisplayUsername returns the username or an empty string when unset
func (u *User) DisplayUsername() string {
	if u.Username == nil {
		return ""
	}
	return *u.Username
}
