package spreadsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrNoSheets = errors.New("workbook has no sheets")

// ReadWorkbook читает лист xlsx в сетку ячеек. Пустое имя листа - первый лист.
// Значения берутся сырыми: даты остаются сериальными числами.
func ReadWorkbook(r io.Reader, sheet string) ([][]any, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoSheets
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return toGrid(rows), nil
}

// ReadCSV читает CSV с заголовком в первой строке
func ReadCSV(r io.Reader) ([][]any, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return toGrid(rows), nil
}

// Read выбирает формат по имени файла
func Read(r io.Reader, filename string) ([][]any, error) {
	name := strings.ToLower(filename)
	if strings.HasSuffix(name, ".csv") {
		return ReadCSV(r)
	}
	return ReadWorkbook(r, "")
}

func toGrid(rows [][]string) [][]any {
	grid := make([][]any, 0, len(rows))
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			if v == "" {
				continue
			}
			cells[i] = v
		}
		grid = append(grid, cells)
	}
	return grid
}
