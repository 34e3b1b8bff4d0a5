package model

import (
	"time"
)

type User struct {
	Id           uint64    `json:"id"`
	Username     string    `json:"username" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "trailmark_user"
}
