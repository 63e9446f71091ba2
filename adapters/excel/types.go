package excel

// RawRowData represents a row of raw spreadsheet data keyed by normalized header
type RawRowData map[string]string

// ExcelData represents the complete spreadsheet dataset
type ExcelData struct {
	Headers []string     // Column headers
	Rows    []RawRowData // Data rows
}

// Has reports whether the header row contains column
func (d *ExcelData) Has(column string) bool {
	for _, h := range d.Headers {
		if h == column {
			return true
		}
	}
	return false
}
