package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/elex-project/xelhua/internal/preset"
	"github.com/elex-project/xelhua/internal/workbook"
	"github.com/elex-project/xelhua/pkg/xelhua"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const typeDescription = "Value type: auto, string, number, bool, date, datetime, formula (default: auto)"

// Server wraps the MCP server
type Server struct {
	mcpServer *server.MCPServer
	opts      []xelhua.Option
}

// New creates a new MCP server with all tools registered. opts are passed to
// every document the tools open.
func New(opts ...xelhua.Option) *Server {
	s := server.NewMCPServer(
		"xelhua",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	srv := &Server{mcpServer: s, opts: opts}
	srv.registerTools()

	return srv
}

// Run starts the MCP server on stdio
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("sheets",
		mcp.WithDescription("List the sheets of a workbook with their row and merged-region counts"),
		mcp.WithString("file", mcp.Required(), mcp.Description("Path to xlsx or xls file")),
	), s.handleSheets)

	s.mcpServer.AddTool(mcp.NewTool("read_cell",
		mcp.WithDescription("Read a single cell with a typed reader"),
		mcp.WithString("file", mcp.Required(), mcp.Description("Path to xlsx or xls file")),
		mcp.WithString("address", mcp.Required(), mcp.Description("Cell address (e.g., A1, B23)")),
		mcp.WithString("sheet", mcp.Description("Sheet name (default: first sheet)")),
		mcp.WithString("type", mcp.Description(typeDescription)),
	), s.handleReadCell)

	s.mcpServer.AddTool(mcp.NewTool("write_cell",
		mcp.WithDescription("Write a value to a specific cell. A missing sheet is created"),
		mcp.WithString("file", mcp.Required(), mcp.Description("Path to xlsx file")),
		mcp.WithString("sheet", mcp.Description("Sheet name (default: first sheet)")),
		mcp.WithString("cell", mcp.Required(), mcp.Description("Cell address (e.g., A1, B23)")),
		mcp.WithString("value", mcp.Required(), mcp.Description("Value to write")),
		mcp.WithString("type", mcp.Description(typeDescription)),
		mcp.WithString("pattern", mcp.Description("Number format for date and datetime values (e.g., dd/MM/yyyy)")),
	), s.handleWriteCell)

	s.mcpServer.AddTool(mcp.NewTool("lookup_cell",
		mcp.WithDescription("Read the cell in a row whose column header matches exactly"),
		mcp.WithString("file", mcp.Required(), mcp.Description("Path to xlsx or xls file")),
		mcp.WithString("sheet", mcp.Description("Sheet name (default: first sheet)")),
		mcp.WithNumber("row", mcp.Required(), mcp.Description("Row to read (1-based)")),
		mcp.WithString("header", mcp.Required(), mcp.Description("Header text, case-sensitive")),
		mcp.WithNumber("header_row", mcp.Description("Row holding the headers (1-based, default: 1)")),
		mcp.WithString("type", mcp.Description(typeDescription)),
	), s.handleLookupCell)

	s.mcpServer.AddTool(mcp.NewTool("merge_cells",
		mcp.WithDescription("Merge a rectangular range of at least two cells"),
		mcp.WithString("file", mcp.Required(), mcp.Description("Path to xlsx file")),
		mcp.WithString("sheet", mcp.Description("Sheet name (default: first sheet)")),
		mcp.WithString("range", mcp.Required(), mcp.Description("Cell range (e.g., A1:C3)")),
	), s.handleMergeCells)

	s.mcpServer.AddTool(mcp.NewTool("set_column_width",
		mcp.WithDescription("Set a column width in characters (0-255)"),
		mcp.WithString("file", mcp.Required(), mcp.Description("Path to xlsx file")),
		mcp.WithString("sheet", mcp.Description("Sheet name (default: first sheet)")),
		mcp.WithString("column", mcp.Required(), mcp.Description("Column letters (e.g., B, AA)")),
		mcp.WithNumber("width", mcp.Required(), mcp.Description("Width in characters")),
	), s.handleSetColumnWidth)

	s.mcpServer.AddTool(mcp.NewTool("set_row_height",
		mcp.WithDescription("Set a row height in points (0-409)"),
		mcp.WithString("file", mcp.Required(), mcp.Description("Path to xlsx file")),
		mcp.WithString("sheet", mcp.Description("Sheet name (default: first sheet)")),
		mcp.WithNumber("row", mcp.Required(), mcp.Description("Row number (1-based)")),
		mcp.WithNumber("height", mcp.Required(), mcp.Description("Height in points")),
	), s.handleSetRowHeight)

	s.mcpServer.AddTool(mcp.NewTool("autosize",
		mcp.WithDescription("Fit a column, or every column of the first row, to its content"),
		mcp.WithString("file", mcp.Required(), mcp.Description("Path to xlsx file")),
		mcp.WithString("sheet", mcp.Description("Sheet name (default: first sheet)")),
		mcp.WithString("column", mcp.Description("Column letters (default: all columns in the first row)")),
	), s.handleAutosize)

	s.mcpServer.AddTool(mcp.NewTool("apply_style",
		mcp.WithDescription("Attach a named style preset from a YAML file to every cell of a range"),
		mcp.WithString("file", mcp.Required(), mcp.Description("Path to xlsx file")),
		mcp.WithString("sheet", mcp.Description("Sheet name (default: first sheet)")),
		mcp.WithString("range", mcp.Required(), mcp.Description("Cell range (e.g., A1:C1)")),
		mcp.WithString("presets", mcp.Required(), mcp.Description("Path to the YAML preset file")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Preset name")),
	), s.handleApplyStyle)

	s.mcpServer.AddTool(mcp.NewTool("create_file",
		mcp.WithDescription("Create a new workbook with optional headers and rows. A name without an extension gets .xlsx"),
		mcp.WithString("file", mcp.Required(), mcp.Description("Path for the new file")),
		mcp.WithString("sheet_name", mcp.Description("Name of first sheet (default: Sheet1)")),
		mcp.WithBoolean("overwrite", mcp.Description("Allow overwriting existing file (default: false)")),
		// headers and rows are JSON arrays read with BindArguments
	), s.handleCreateFile)
}

// Tool handlers

func (s *Server) handleSheets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	validPath, err := ValidateFilePath(request.GetString("file", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := workbook.Sheets(validPath, s.opts...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

func (s *Server) handleReadCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	validPath, err := ValidateFilePath(request.GetString("file", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	typ, err := workbook.ParseValueType(request.GetString("type", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := workbook.ReadCell(validPath, request.GetString("sheet", ""), request.GetString("address", ""), typ, s.opts...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

func (s *Server) handleWriteCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	validPath, err := ValidateFilePath(request.GetString("file", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	typ, err := workbook.ParseValueType(request.GetString("type", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := workbook.WriteCell(validPath,
		request.GetString("sheet", ""),
		request.GetString("cell", ""),
		request.GetString("value", ""),
		typ,
		request.GetString("pattern", ""),
		s.opts...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

func (s *Server) handleLookupCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	validPath, err := ValidateFilePath(request.GetString("file", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	typ, err := workbook.ParseValueType(request.GetString("type", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	row := request.GetInt("row", 0)
	headerRow := request.GetInt("header_row", 1)
	if row < 1 || headerRow < 1 {
		return mcp.NewToolResultError(fmt.Sprintf("invalid row %d or header_row %d (must be >= 1)", row, headerRow)), nil
	}

	result, err := workbook.Lookup(validPath, request.GetString("sheet", ""), row, request.GetString("header", ""), headerRow, typ, s.opts...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

func (s *Server) handleMergeCells(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	validPath, err := ValidateFilePath(request.GetString("file", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := workbook.Merge(validPath, request.GetString("sheet", ""), request.GetString("range", ""), s.opts...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

func (s *Server) handleSetColumnWidth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	column := request.GetString("column", "")
	width := request.GetInt("width", -1)
	if width < 0 || width > MaxColumnChars {
		return mcp.NewToolResultError(fmt.Sprintf("invalid width %d (must be 0-%d)", width, MaxColumnChars)), nil
	}
	if xelhua.ColumnNameToIndex(column) < 0 {
		return mcp.NewToolResultError(fmt.Sprintf("invalid column %q", column)), nil
	}

	validPath, err := ValidateFilePath(request.GetString("file", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rz := workbook.Resize{Widths: map[string]int{column: width}}
	result, err := workbook.ApplyResize(validPath, request.GetString("sheet", ""), rz, s.opts...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

func (s *Server) handleSetRowHeight(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	row := request.GetInt("row", 0)
	height := request.GetFloat("height", -1)
	if row < 1 {
		return mcp.NewToolResultError(fmt.Sprintf("invalid row number: %d (must be >= 1)", row)), nil
	}
	if height < 0 || height > MaxRowPoints {
		return mcp.NewToolResultError(fmt.Sprintf("invalid height %v (must be 0-%d)", height, MaxRowPoints)), nil
	}

	validPath, err := ValidateFilePath(request.GetString("file", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	rz := workbook.Resize{Heights: map[int]float64{row: height}}
	result, err := workbook.ApplyResize(validPath, request.GetString("sheet", ""), rz, s.opts...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

func (s *Server) handleAutosize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	validPath, err := ValidateFilePath(request.GetString("file", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := workbook.AutoSize(validPath, request.GetString("sheet", ""), request.GetString("column", ""), s.opts...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

func (s *Server) handleApplyStyle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	validPath, err := ValidateFilePath(request.GetString("file", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	presetsPath, err := ValidateFilePath(request.GetString("presets", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	presets, err := preset.Load(presetsPath)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	result, err := workbook.ApplyPreset(validPath, request.GetString("sheet", ""), request.GetString("range", ""), presets, request.GetString("name", ""), s.opts...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

func (s *Server) handleCreateFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file := request.GetString("file", "")
	sheetName := request.GetString("sheet_name", "Sheet1")
	overwrite := request.GetBool("overwrite", false)

	var args struct {
		Headers []string `json:"headers"`
		Rows    [][]any  `json:"rows"`
	}
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse arguments: %v", err)), nil
	}
	if len(args.Rows) > workbook.MaxCreateRows {
		return mcp.NewToolResultError(fmt.Sprintf("too many rows: %d exceeds limit of %d", len(args.Rows), workbook.MaxCreateRows)), nil
	}

	// Validate the path the file will actually be saved under.
	validPath, err := ValidateWritePath(xelhua.ResolveSavePath(file, xelhua.FormatModern), overwrite)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := workbook.Create(validPath, sheetName, args.Headers, args.Rows, overwrite, s.opts...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(result)
}

// Helper functions

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("JSON encoding error: %v", err)), nil
	}

	if len(data) > MaxOutputBytes {
		return mcp.NewToolResultError(fmt.Sprintf("Output too large (%d bytes, max %d bytes).", len(data), MaxOutputBytes)), nil
	}

	return mcp.NewToolResultText(string(data)), nil
}
