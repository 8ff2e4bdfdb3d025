package model

import (
	"gorm.io/gorm"
)

type Note struct {
	gorm.Model
	Title       string `gorm:"column:title;size:100;not null"`
	Description string `gorm:"column:description;size:500;not null"`
	Done        bool   `gorm:"column:done;default:false;not null"`
	UserID      uint   `gorm:"column:user_id;index;not null"`

	Tags []Tag `gorm:"many2many:note_tags"`
}
