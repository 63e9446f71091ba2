package excel

// ImportConfig holds options for reading post spreadsheets
type ImportConfig struct {
	Sheet string `json:"sheet"` // empty selects the first sheet
	Comma rune   `json:"comma"` // CSV field delimiter
}

// DefaultImportConfig returns the defaults used by the server and CLI
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		Comma: ',',
	}
}
