package gameboard

import (
	"fmt"
	"math"

	"github.com/trailmark/trailmark-backend/internal/pkg/model"
	"github.com/trailmark/trailmark-backend/internal/pkg/reject"
)

// Board and path save payloads arrive as loosely-typed JSON drawn by the
// canvas frontend. They are validated field by field here and only leave
// this file as typed values.

type SaveBoardRequest struct {
	Pk    uint64
	Title string
	Rows  int
	Cols  int
	Dots  model.GridCellList
}

// ParseSaveBoardRequest checks the decoded body and collects every problem
// into the per-field error map instead of stopping at the first one.
func ParseSaveBoardRequest(data map[string]any) (*SaveBoardRequest, reject.FieldErrors) {
	fieldErrors := reject.FieldErrors{}

	title, _ := data["title"].(string)
	if title == "" {
		fieldErrors.Add("title", "Title is required.")
	}

	rows, rowsOk := asPositiveInt(data["rows"])
	if !rowsOk {
		fieldErrors.Add("rows", "Row count must be a positive integer.")
	}

	cols, colsOk := asPositiveInt(data["cols"])
	if !colsOk {
		fieldErrors.Add("cols", "Column count must be a positive integer.")
	}

	var dots model.GridCellList
	if rowsOk && colsOk {
		dots = parseCellList(data["dots"], "dots", rows, cols, fieldErrors)
	}

	if !fieldErrors.Empty() {
		return nil, fieldErrors
	}

	request := &SaveBoardRequest{Title: title, Rows: rows, Cols: cols, Dots: dots}
	if pk, ok := asPositiveInt(data["pk"]); ok {
		request.Pk = uint64(pk)
	}
	return request, nil
}

// ParseCells validates a bare JSON array of cells against the board bounds.
func ParseCells(value any, rows, cols int) (model.GridCellList, reject.FieldErrors) {
	fieldErrors := reject.FieldErrors{}
	cells := parseCellList(value, "paths", rows, cols, fieldErrors)
	if !fieldErrors.Empty() {
		return nil, fieldErrors
	}
	return cells, nil
}

func parseCellList(value any, field string, rows, cols int, fieldErrors reject.FieldErrors) model.GridCellList {
	list, ok := value.([]any)
	if !ok {
		if field == "dots" {
			fieldErrors.Add(field, "Dots must be a list.")
		} else {
			fieldErrors.Add(field, "Paths must be a list.")
		}
		return nil
	}

	cells := make(model.GridCellList, 0, len(list))
	for i, item := range list {
		key := fmt.Sprintf("%s[%d]", field, i)

		object, ok := item.(map[string]any)
		if !ok {
			if field == "dots" {
				fieldErrors.Add(key, "Each dot must be an object.")
			} else {
				fieldErrors.Add(key, "Each cell must be an object.")
			}
			continue
		}

		col, colOk := asInt(object["col"])
		row, rowOk := asInt(object["row"])
		if !colOk || !rowOk {
			fieldErrors.Add(key, "x and y must be integers.")
			continue
		}

		if col < 0 || col >= cols || row < 0 || row >= rows {
			fieldErrors.Add(key, fmt.Sprintf("x must be in [0, %d], y must be in [0, %d].", cols-1, rows-1))
			continue
		}

		cells = append(cells, model.GridCell{Row: row, Col: col})
	}
	return cells
}

// asInt accepts JSON numbers only when they carry no fractional part.
func asInt(value any) (int, bool) {
	number, ok := value.(float64)
	if !ok || number != math.Trunc(number) {
		return 0, false
	}
	return int(number), true
}

func asPositiveInt(value any) (int, bool) {
	number, ok := asInt(value)
	if !ok || number <= 0 {
		return 0, false
	}
	return number, true
}
