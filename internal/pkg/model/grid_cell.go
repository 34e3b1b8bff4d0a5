package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// GridCell is a single cell position on a game board grid.
type GridCell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// GridCellList persists as a JSON text column so boards and paths keep a
// typed cell list in Go while staying a plain string in the database.
type GridCellList []GridCell

func (l GridCellList) Value() (driver.Value, error) {
	if l == nil {
		l = GridCellList{}
	}
	return json.Marshal(l)
}

func (l *GridCellList) Scan(value any) error {
	if value == nil {
		*l = GridCellList{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into GridCellList", value)
	}

	if len(raw) == 0 {
		*l = GridCellList{}
		return nil
	}
	return json.Unmarshal(raw, l)
}

// InBounds reports whether every cell fits a rows x cols grid.
func (l GridCellList) InBounds(rows, cols int) error {
	for i, cell := range l {
		if cell.Col < 0 || cell.Col >= cols || cell.Row < 0 || cell.Row >= rows {
			return fmt.Errorf("cell %d out of bounds for %dx%d grid", i, rows, cols)
		}
	}
	return nil
}
