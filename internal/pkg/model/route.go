package model

import (
	"time"
)

type Route struct {
	Id           uint64    `json:"id"`
	Name         string    `json:"name"`
	UserId       uint64    `json:"-"`
	BackgroundId uint64    `json:"background"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Route) TableName() string {
	return "route"
}
