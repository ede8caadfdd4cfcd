package mcp

const (
	// MaxOutputBytes is the maximum size of JSON output (5MB)
	MaxOutputBytes = 5 * 1024 * 1024

	// MaxColumnChars is the widest column set_column_width accepts
	MaxColumnChars = 255

	// MaxRowPoints is the tallest row set_row_height accepts
	MaxRowPoints = 409
)
