package sheet

import (
	"testing"
)

func TestNewCellClassification(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected CellKind
	}{
		{"empty string", "", KindEmpty},
		{"whitespace only", "   ", KindEmpty},
		{"integer", "42", KindNumber},
		{"decimal", "3.14", KindNumber},
		{"negative", "-7.5", KindNumber},
		{"date serial", "44927", KindNumber},
		{"plain text", "钢管", KindText},
		{"mixed text", "160*1000米", KindText},
		{"date string", "2023-01-01", KindText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewCell(tt.raw); got.Kind != tt.expected {
				t.Errorf("NewCell(%q).Kind = %v, want %v", tt.raw, got.Kind, tt.expected)
			}
		})
	}
}

func TestCellNumber(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected float64
		ok       bool
	}{
		{"plain number", "160", 160, true},
		{"decimal", "10.5", 10.5, true},
		{"leading run in text", "160*1000米", 160, true},
		{"decimal run in text", "2.5吨", 2.5, true},
		{"negative run", "-3件", -3, true},
		{"no leading run", "共160件", 0, false},
		{"empty", "", 0, false},
		{"bare minus", "-件", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewCell(tt.raw).Number()
			if ok != tt.ok {
				t.Fatalf("Number() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.expected {
				t.Errorf("Number() = %f, want %f", got, tt.expected)
			}
		})
	}
}

func TestCellDateString(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		ok       bool
	}{
		{"serial 2023", "44927", "2023-01-01", true},
		{"serial 2025", "45658", "2025-01-01", true},
		{"ISO text", "2023-06-15", "2023-06-15", true},
		{"slash text", "2023/6/15", "2023-06-15", true},
		{"chinese text", "2023年6月15日", "2023-06-15", true},
		{"unparsable text passes through", "明天", "明天", true},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NewCell(tt.raw).DateString()
			if ok != tt.ok {
				t.Fatalf("DateString() ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.expected {
				t.Errorf("DateString() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSerialToDate(t *testing.T) {
	tests := []struct {
		serial   float64
		expected string
	}{
		{44927, "2023-01-01"},
		{45658, "2025-01-01"},
		{45291, "2023-12-31"},
	}

	for _, tt := range tests {
		if got := SerialToDate(tt.serial); got != tt.expected {
			t.Errorf("SerialToDate(%f) = %q, want %q", tt.serial, got, tt.expected)
		}
	}
}

func TestGridCell(t *testing.T) {
	g := NewGrid([][]string{
		{"a", "b", "c"},
		{"d"},
		{},
	})

	if got := g.Cell(0, 1).Text(); got != "b" {
		t.Errorf("Cell(0,1) = %q, want b", got)
	}
	if !g.Cell(1, 2).IsEmpty() {
		t.Error("Cell(1,2) on ragged row should be empty")
	}
	if !g.Cell(5, 0).IsEmpty() {
		t.Error("Cell beyond last row should be empty")
	}
	if !g.Cell(-1, 0).IsEmpty() {
		t.Error("Cell with negative row should be empty")
	}
	if !g.RowIsEmpty(2) {
		t.Error("RowIsEmpty(2) = false, want true")
	}
	if g.RowIsEmpty(0) {
		t.Error("RowIsEmpty(0) = true, want false")
	}
	if got := g.RowCount(); got != 3 {
		t.Errorf("RowCount() = %d, want 3", got)
	}
}
