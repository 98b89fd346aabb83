package excel

// RawRowData represents a row of raw sheet data keyed by normalized header
type RawRowData map[string]string

// ExcelData represents the complete sheet
type ExcelData struct {
	Headers []string     // Column headers, lower-cased and trimmed
	Rows    []RawRowData // Data rows
	// RowNumbers holds the 1-based sheet row of each entry in Rows
	RowNumbers []int
}
