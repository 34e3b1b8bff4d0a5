package model

import (
	"time"
)

type GameBoard struct {
	Id        uint64       `json:"id"`
	UserId    uint64       `json:"-"`
	Title     string       `json:"title"`
	Rows      int          `json:"rows"`
	Cols      int          `json:"cols"`
	Dots      GridCellList `json:"dots" gorm:"type:text"`
	CreatedAt time.Time    `json:"created_at"`
}

func (GameBoard) TableName() string {
	return "game_board"
}
