package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"terlab/internal/errors"
	"terlab/ports"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV post files
type DataReader struct {
	config ImportConfig
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(config ImportConfig) *DataReader {
	if config.Comma == 0 {
		config.Comma = ','
	}
	return &DataReader{config: config}
}

var _ ports.PostReader = (*DataReader)(nil)

// fileTypeOf picks the parser from the file extension
func fileTypeOf(filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return "csv", nil
	case ".xlsx", ".xlsm":
		return "xlsx", nil
	default:
		return "", errors.InvalidInput(fmt.Sprintf("unsupported file type: %q (expected .xlsx or .csv)", filepath.Ext(filename)))
	}
}

// ReadFile opens a post file from disk and imports it
func (r *DataReader) ReadFile(path string) (*ports.ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("file " + path)
		}
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	return r.Read(f, filepath.Base(path))
}

// Read parses an uploaded xlsx or csv stream into posts with metrics attached
func (r *DataReader) Read(src io.Reader, filename string) (*ports.ImportResult, error) {
	data, err := r.ReadData(src, filename)
	if err != nil {
		return nil, err
	}
	return postsFromData(data)
}

// ReadData reads the raw header and rows of an xlsx or csv stream
func (r *DataReader) ReadData(src io.Reader, filename string) (*ExcelData, error) {
	fileType, err := fileTypeOf(filename)
	if err != nil {
		return nil, err
	}
	log.Printf("[DataReader] Starting to read %s file: %s", fileType, filename)

	var rows [][]string
	switch fileType {
	case "csv":
		rows, err = r.readCSVRows(src)
	default:
		rows, err = r.readExcelRows(src)
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 1 {
		return nil, errors.InvalidInput(fmt.Sprintf("%s file has no header row", strings.ToUpper(fileType)))
	}

	return r.processRows(rows, fileType), nil
}

// readExcelRows reads the configured sheet, or the first one
func (r *DataReader) readExcelRows(src io.Reader) ([][]string, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("failed to open Excel file: %w", err))
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.InvalidInput("Excel file has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("failed to read sheet %s: %w", sheet, err))
	}
	log.Printf("[DataReader] Sheet %s read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// readCSVRows reads all CSV records; ragged rows are allowed
func (r *DataReader) readCSVRows(src io.Reader) ([][]string, error) {
	reader := csv.NewReader(src)
	reader.Comma = r.config.Comma
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, fmt.Errorf("failed to read CSV file: %w", err))
	}
	log.Printf("[DataReader] CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return rows, nil
}

// processRows converts raw string rows into ExcelData keyed by normalized header
func (r *DataReader) processRows(rows [][]string, fileType string) *ExcelData {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = normalizeHeader(header)
	}

	dataRows := make([]RawRowData, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		rowData := make(RawRowData)
		for j, cell := range rows[i] {
			if j < len(headers) && headers[j] != "" {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
	}

	log.Printf("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(fileType), len(headers), len(dataRows))

	return &ExcelData{
		Headers: headers,
		Rows:    dataRows,
	}
}

// normalizeHeader lowercases a header and joins words with underscores
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer(" ", "_", "-", "_").Replace(h)
	return h
}
