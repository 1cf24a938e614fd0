// Package stores reads the store metrics sheet (CSV or Excel) and resolves
// which city a map should be centered on.
package stores

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"cardscout/internal/model"
)

var ErrUnsupportedFormat = errors.New("stores: unsupported file format")

// LoadTable never fails: a missing or unreadable file gives an empty table so
// lookups simply miss.
func LoadTable(path, storeColumn string) model.StoreTable {
	table, err := ReadTable(path, storeColumn)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("[stores] could not load %s: %v", path, err)
		}
		return model.StoreTable{}
	}
	return table
}

// ReadTable is LoadTable with the error kept.
func ReadTable(path, storeColumn string) (model.StoreTable, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readExcel(path, storeColumn)
	case ".csv", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return readCSV(f, storeColumn)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func readExcel(path, storeColumn string) (model.StoreTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return model.StoreTable{}, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return model.StoreTable{}, nil
	}

	header := rows[0]
	storeIdx := findColumn(header, storeColumn)
	if storeIdx < 0 {
		storeIdx = 0
	}

	table := model.StoreTable{}
	for _, rec := range rows[1:] {
		add(table, header, rec, storeIdx)
	}
	return table, nil
}

func readCSV(r io.Reader, storeColumn string) (model.StoreTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return model.StoreTable{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	storeIdx := findColumn(header, storeColumn)
	for _, name := range []string{"Store", "store"} {
		if storeIdx >= 0 {
			break
		}
		storeIdx = indexOf(header, name)
	}
	if storeIdx < 0 {
		return model.StoreTable{}, nil
	}

	table := model.StoreTable{}
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		add(table, header, rec, storeIdx)
	}
	return table, nil
}

// add stores one record under its lowercase store name. Later duplicates win.
func add(table model.StoreTable, header, rec []string, storeIdx int) {
	store := clean(cell(rec, storeIdx))
	if store == "" {
		return
	}

	row := model.StoreRow{
		Columns: make([]string, 0, len(header)),
		Values:  make(map[string]string, len(header)),
	}
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, dup := row.Values[h]; !dup {
			row.Columns = append(row.Columns, h)
		}
		row.Values[h] = clean(cell(rec, i))
	}
	table[strings.ToLower(store)] = row
}

func cell(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

// clean trims and drops spreadsheet "nan" placeholders.
func clean(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "nan") {
		return ""
	}
	return v
}

func findColumn(header []string, name string) int {
	target := strings.ToLower(strings.TrimSpace(name))
	for i, h := range header {
		if strings.ToLower(strings.TrimSpace(h)) == target {
			return i
		}
	}
	return -1
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}
