package survey

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Load reads a survey file into a Table. XLSX and CSV are supported,
// chosen by extension (anything that isn't .csv is treated as XLSX).
// The file handle is scoped to this call.
func Load(path string) (*Table, error) {
	return LoadSheet(path, "")
}

// LoadSheet is Load with an explicit XLSX sheet name. An empty name
// selects the workbook's first sheet; the name is ignored for CSV.
func LoadSheet(path, sheet string) (*Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &FileNotFoundError{Path: path}
	}

	var rows [][]string
	var err error
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		rows, err = readCSV(path)
	} else {
		rows, err = readXLSX(path, sheet)
	}
	if err != nil {
		return nil, err
	}
	return tableFromRows(path, rows)
}

func tableFromRows(path string, rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, &InvalidFormatError{Path: path, Reason: "no columns"}
	}
	return NewTable(path, rows[0], rows[1:])
}

func readXLSX(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &InvalidFormatError{Path: path, Reason: "cannot open workbook", Err: err}
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &InvalidFormatError{Path: path, Reason: "cannot read sheet " + sheet, Err: err}
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &InvalidFormatError{Path: path, Reason: "cannot open file", Err: err}
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, &InvalidFormatError{Path: path, Reason: "cannot parse csv", Err: err}
	}
	return rows, nil
}
