package model

import (
	"gorm.io/gorm"
)

// User is the account record owned by the user directory. The auth
// service and session cache only ever hold transient copies of it,
// keyed by email.
type User struct {
	gorm.Model
	Username     string `gorm:"column:username;unique;not null"`
	Email        string `gorm:"column:email;unique;not null"`
	Password     string `gorm:"column:password;not null"`
	Confirmed    bool   `gorm:"column:confirmed;default:false;not null"`
	Avatar       string `gorm:"column:avatar"`
	RefreshToken string `gorm:"column:refresh_token"`

	Notes []Note `gorm:"foreignKey:UserID"`
	Tags  []Tag  `gorm:"foreignKey:UserID"`
}
