package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"campaigninsights/internal/domain/campaign"
)

// ErrUnsupportedFormat формат файла не поддерживается
var ErrUnsupportedFormat = errors.New("unsupported file format, expected .csv or .xlsx")

// ErrEmptyFile в файле нет строки заголовка
var ErrEmptyFile = errors.New("file is empty, expected a header row")

// ErrUnreadableFile содержимое не удалось разобрать как таблицу
var ErrUnreadableFile = errors.New("file could not be read as a table")

// ReadFile читает табличные данные, формат определяется по расширению имени файла
func ReadFile(fileName string, r io.Reader) (campaign.Table, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv", ".txt", "":
		return ReadCSV(r)
	case ".xlsx", ".xlsm":
		return ReadXLSX(r)
	default:
		return campaign.Table{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(fileName))
	}
}

// ReadCSV читает CSV с разделителем-запятой и строкой заголовка.
// Данные не в UTF-8 декодируются как Windows-1252.
func ReadCSV(r io.Reader) (campaign.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return campaign.Table{}, fmt.Errorf("failed to read file: %w", err)
	}

	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return campaign.Table{}, fmt.Errorf("%w: decode: %v", ErrUnreadableFile, err)
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	records, err := reader.ReadAll()
	if err != nil {
		return campaign.Table{}, fmt.Errorf("csv read: %w", err)
	}
	if len(records) == 0 {
		return campaign.Table{}, ErrEmptyFile
	}

	return campaign.Table{Header: records[0], Rows: records[1:]}, nil
}

// ReadXLSX читает первый лист книги Excel, первая строка - заголовок
func ReadXLSX(r io.Reader) (campaign.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return campaign.Table{}, fmt.Errorf("%w: failed to open Excel file: %v", ErrUnreadableFile, err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return campaign.Table{}, fmt.Errorf("%w: no sheets found in Excel file", ErrUnreadableFile)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return campaign.Table{}, fmt.Errorf("%w: failed to get rows: %v", ErrUnreadableFile, err)
	}
	if len(rows) == 0 {
		return campaign.Table{}, ErrEmptyFile
	}

	table := campaign.Table{Header: rows[0]}
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// isEmptyRow проверяет, является ли строка пустой
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
