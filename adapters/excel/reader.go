package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"goverdict/domain/core"
	"goverdict/internal"
	"goverdict/models"
	"goverdict/ports"

	"github.com/xuri/excelize/v2"
)

// DataReader reads evaluation requests from Excel and CSV files
type DataReader struct {
	config   BatchFileConfig
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

var _ ports.BatchReader = (*DataReader)(nil)

// NewDataReader creates a reader for an Excel or CSV file. The type is
// picked from the extension; anything other than .csv is opened as xlsx.
func NewDataReader(config BatchFileConfig) *DataReader {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{
		config:   config,
		fileType: fileType,
		logger:   internal.DefaultLogger.WithComponent("batch-reader"),
	}
}

// ReadRequests reads the file and maps each data row to a request
func (r *DataReader) ReadRequests() ([]models.EvaluationRequest, error) {
	data, err := r.ReadData()
	if err != nil {
		return nil, err
	}
	return MapRequests(data)
}

// ReadData reads the header row and every non-empty data row
func (r *DataReader) ReadData() (*ExcelData, error) {
	r.logger.Debug("reading %s file: %s", r.fileType, r.config.FilePath)

	if _, err := os.Stat(r.config.FilePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s file not found: %s", core.ErrInvalidInput, strings.ToUpper(r.fileType), r.config.FilePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVData()
	case "xlsx":
		return r.readExcelData()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

func (r *DataReader) readExcelData() (*ExcelData, error) {
	start := time.Now()
	f, err := excelize.OpenFile(r.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := r.config.SheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", core.ErrInvalidInput)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	r.logger.Debug("sheet %q read in %.2fms (%d rows)", sheet, float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

func (r *DataReader) readCSVData() (*ExcelData, error) {
	file, err := os.Open(r.config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV file: %v", core.ErrInvalidInput, err)
	}

	return r.processRows(rows)
}

// processRows converts raw string rows into ExcelData. Blank rows are
// skipped; RowNumbers keeps the sheet row of every row that remains.
func (r *DataReader) processRows(rows [][]string) (*ExcelData, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: %s file must have a header row and at least one data row",
			core.ErrInvalidInput, strings.ToUpper(r.fileType))
	}

	headers := make([]string, len(rows[0]))
	for i, header := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(header))
	}

	data := &ExcelData{Headers: headers}
	for i := 1; i < len(rows); i++ {
		rowData := make(RawRowData)
		for j, cell := range rows[i] {
			if j >= len(headers) || headers[j] == "" {
				continue
			}
			if v := strings.TrimSpace(cell); v != "" {
				rowData[headers[j]] = v
			}
		}
		if len(rowData) == 0 {
			continue
		}
		data.Rows = append(data.Rows, rowData)
		data.RowNumbers = append(data.RowNumbers, i+1)
	}

	r.logger.Debug("%s file processed (%d columns, %d rows)", strings.ToUpper(r.fileType), len(headers), len(data.Rows))
	return data, nil
}
