package model

import (
	"time"
)

// AuthToken is an opaque API key presented as "Authorization: Token <key>".
type AuthToken struct {
	Key       string    `json:"key" gorm:"primaryKey"`
	UserId    uint64    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (AuthToken) TableName() string {
	return "auth_token"
}
