package model

import "testing"

func TestGridCellListValueScanRoundTrip(t *testing.T) {
	original := GridCellList{{Row: 0, Col: 2}, {Row: 4, Col: 1}}

	value, err := original.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var restored GridCellList
	if err := restored.Scan(value); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(restored) != 2 || restored[0] != original[0] || restored[1] != original[1] {
		t.Errorf("round trip gave %+v, want %+v", restored, original)
	}
}

func TestGridCellListScanHandlesStringAndNil(t *testing.T) {
	var fromString GridCellList
	if err := fromString.Scan(`[{"row":1,"col":2}]`); err != nil {
		t.Fatalf("Scan string failed: %v", err)
	}
	if len(fromString) != 1 || fromString[0] != (GridCell{Row: 1, Col: 2}) {
		t.Errorf("scanned %+v", fromString)
	}

	var fromNil GridCellList
	if err := fromNil.Scan(nil); err != nil {
		t.Fatalf("Scan nil failed: %v", err)
	}
	if fromNil == nil || len(fromNil) != 0 {
		t.Errorf("nil scan gave %+v, want empty list", fromNil)
	}
}

func TestGridCellListNilValueEncodesEmptyArray(t *testing.T) {
	var l GridCellList
	value, err := l.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if string(value.([]byte)) != "[]" {
		t.Errorf("nil list encodes as %s, want []", value)
	}
}

func TestGridCellListInBounds(t *testing.T) {
	tests := []struct {
		name    string
		cells   GridCellList
		wantErr bool
	}{
		{"all inside", GridCellList{{Row: 0, Col: 0}, {Row: 2, Col: 3}}, false},
		{"empty list", GridCellList{}, false},
		{"col at edge", GridCellList{{Row: 0, Col: 4}}, true},
		{"row at edge", GridCellList{{Row: 3, Col: 0}}, true},
		{"negative col", GridCellList{{Row: 0, Col: -1}}, true},
		{"negative row", GridCellList{{Row: -1, Col: 0}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cells.InBounds(3, 4)
			if (err != nil) != tt.wantErr {
				t.Errorf("InBounds(3, 4) error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
