package xlsx

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet is the first worksheet of a workbook: a header row and data rows.
type Sheet struct {
	Name   string
	header map[string]int
	Rows   [][]string
}

// ReadFirstSheet loads every row of the workbook's first sheet. Cells are
// read unformatted, so dates arrive as Excel serial numbers.
func ReadFirstSheet(path string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", path, sheets[0], err)
	}
	return NewSheet(sheets[0], rows), nil
}

// NewSheet treats rows[0] as the header. Header names are matched
// case-insensitively and ignoring surrounding space.
func NewSheet(name string, rows [][]string) *Sheet {
	s := &Sheet{Name: name, header: map[string]int{}}
	if len(rows) == 0 {
		return s
	}
	for i, h := range rows[0] {
		key := normalize(h)
		if _, dup := s.header[key]; !dup && key != "" {
			s.header[key] = i
		}
	}
	s.Rows = rows[1:]
	return s
}

// Column returns the index of the first header matching any alias.
func (s *Sheet) Column(aliases ...string) (int, bool) {
	for _, a := range aliases {
		if i, ok := s.header[normalize(a)]; ok {
			return i, true
		}
	}
	return 0, false
}

// Cell returns row[col] trimmed, or "" when the row is short.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
