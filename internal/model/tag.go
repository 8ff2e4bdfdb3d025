package model

import (
	"gorm.io/gorm"
)

type Tag struct {
	gorm.Model
	Name   string `gorm:"column:name;size:50;not null;uniqueIndex:idx_tags_user_name"`
	UserID uint   `gorm:"column:user_id;not null;uniqueIndex:idx_tags_user_name"`
}
