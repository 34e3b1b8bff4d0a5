package model

import (
	"time"
)

type Path struct {
	Id        uint64       `json:"id"`
	UserId    uint64       `json:"-"`
	BoardId   uint64       `json:"board_id"`
	Cells     GridCellList `json:"path" gorm:"type:text"`
	CreatedAt time.Time    `json:"created_at"`
}

func (Path) TableName() string {
	return "path"
}
