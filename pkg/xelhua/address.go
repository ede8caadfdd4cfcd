package xelhua

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Engine limits.
const (
	MaxRows    = 1 << 20 // 1,048,576
	MaxColumns = 1 << 14 // 16,384
)

// Range is a rectangular block of cells, all bounds 0-based and inclusive.
type Range struct {
	FirstRow, LastRow int
	FirstCol, LastCol int
}

// cellAddrRegex matches cell addresses like A1, B23, AA100
var cellAddrRegex = regexp.MustCompile(`^([A-Za-z]+)([0-9]+)$`)

// ParseAddress parses an A1-style address into 0-based row and column.
func ParseAddress(addr string) (row, col int, err error) {
	addr = strings.TrimSpace(strings.ToUpper(addr))
	matches := cellAddrRegex.FindStringSubmatch(addr)
	if matches == nil {
		return 0, 0, fmt.Errorf("%w: %s", ErrInvalidAddress, addr)
	}

	col = ColumnNameToIndex(matches[1])
	n, err := strconv.Atoi(matches[2])
	if err != nil || n < 1 || n > MaxRows || col < 0 || col >= MaxColumns {
		return 0, 0, fmt.Errorf("%w: %s", ErrInvalidAddress, addr)
	}

	return n - 1, col, nil
}

// ColumnNameToIndex converts A, B, ..., AA to a 0-based column index.
// It returns -1 for a name with characters outside A-Z.
func ColumnNameToIndex(name string) int {
	result := 0
	for _, ch := range strings.ToUpper(name) {
		if ch < 'A' || ch > 'Z' {
			return -1
		}
		result = result*26 + int(ch-'A'+1)
	}
	return result - 1
}

// ColumnIndexToName converts a 0-based column index to its letters.
func ColumnIndexToName(col int) string {
	name := ""
	for col++; col > 0; col /= 26 {
		col--
		name = string(rune('A'+col%26)) + name
	}
	return name
}

// FormatAddress formats 0-based coordinates as an A1-style address.
func FormatAddress(row, col int) string {
	return fmt.Sprintf("%s%d", ColumnIndexToName(col), row+1)
}

// ParseRange parses "A1:C10" or a single "A1" into a Range.
// Reversed corners are normalized.
func ParseRange(s string) (Range, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	switch len(parts) {
	case 1:
		row, col, err := ParseAddress(parts[0])
		if err != nil {
			return Range{}, err
		}
		return Range{FirstRow: row, LastRow: row, FirstCol: col, LastCol: col}, nil

	case 2:
		r1, c1, err := ParseAddress(parts[0])
		if err != nil {
			return Range{}, fmt.Errorf("%w: invalid start %s", ErrInvalidRange, parts[0])
		}
		r2, c2, err := ParseAddress(parts[1])
		if err != nil {
			return Range{}, fmt.Errorf("%w: invalid end %s", ErrInvalidRange, parts[1])
		}
		if r1 > r2 {
			r1, r2 = r2, r1
		}
		if c1 > c2 {
			c1, c2 = c2, c1
		}
		return Range{FirstRow: r1, LastRow: r2, FirstCol: c1, LastCol: c2}, nil

	default:
		return Range{}, fmt.Errorf("%w: %s", ErrInvalidRange, s)
	}
}

// String returns the range as "A1:C10", or "A1" for a single cell.
func (r Range) String() string {
	if r.FirstRow == r.LastRow && r.FirstCol == r.LastCol {
		return FormatAddress(r.FirstRow, r.FirstCol)
	}
	return FormatAddress(r.FirstRow, r.FirstCol) + ":" + FormatAddress(r.LastRow, r.LastCol)
}

func checkRow(index int) error {
	if index < 0 || index >= MaxRows {
		return fmt.Errorf("%w: row %d", ErrInvalidIndex, index)
	}
	return nil
}

func checkCol(index int) error {
	if index < 0 || index >= MaxColumns {
		return fmt.Errorf("%w: column %d", ErrInvalidIndex, index)
	}
	return nil
}
