package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"registration/config"
	"registration/domain"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const registrationSheet = "Registrations"

// ErrCellValue is returned by Save for a value the workbook cannot hold
// unchanged.
var ErrCellValue = errors.New("value cannot be stored in a spreadsheet cell")

type excelRegistrationRepository struct {
	path string
}

func NewExcelRegistrationRepository(path string) domain.RegistrationRepo {
	return &excelRegistrationRepository{
		path: path,
	}
}

// Load reads every registration from the first sheet of the workbook. A
// missing workbook is an empty table.
func (er *excelRegistrationRepository) Load(ctx context.Context) ([]domain.Registration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(er.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Registration{}, nil
		}
		return nil, fmt.Errorf("could not stat registration file: %w", err)
	}

	f, err := excelize.OpenFile(er.path)
	if err != nil {
		return nil, fmt.Errorf("could not open registration file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("could not read registration rows: %w", err)
	}

	records := make([]domain.Registration, 0, len(rows))
	for i, row := range rows {
		// header
		if i == 0 || isBlankRow(row) {
			continue
		}

		// rows typed in by hand without an ID are not registrations
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			config.GetLogrusInstance().Warnf("registration file: skipping row %d without ID", i+1)
			continue
		}

		record, err := domain.RegistrationFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		records = append(records, record)
	}

	return records, nil
}

// Save rewrites the whole workbook: header row first, then one row per record.
func (er *excelRegistrationRepository) Save(ctx context.Context, records []domain.Registration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), registrationSheet); err != nil {
		return fmt.Errorf("could not name sheet: %w", err)
	}

	header := make([]interface{}, len(domain.RegistrationColumns))
	for i, col := range domain.RegistrationColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(registrationSheet, "A1", &header); err != nil {
		return fmt.Errorf("could not write header: %w", err)
	}

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		row := record.Row()
		values := make([]interface{}, len(row))
		values[0] = record.ID
		for j := 1; j < len(row); j++ {
			if err := checkCellValue(row[j]); err != nil {
				return fmt.Errorf("registration %d, %s: %w", record.ID, domain.RegistrationColumns[j], err)
			}
			values[j] = row[j]
		}

		if err := f.SetSheetRow(registrationSheet, cell, &values); err != nil {
			return fmt.Errorf("could not write registration %d: %w", record.ID, err)
		}
	}

	if dir := filepath.Dir(er.path); dir != "." {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("could not create registration directory: %w", err)
		}
	}

	if err := f.SaveAs(er.path); err != nil {
		return fmt.Errorf("could not save registration file: %w", err)
	}
	return nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// checkCellValue rejects text that excelize would truncate or rewrite: more
// than TotalCellChars characters, invalid UTF-8, or characters XML 1.0 does
// not allow.
func checkCellValue(value string) error {
	if !utf8.ValidString(value) {
		return fmt.Errorf("%w: invalid UTF-8", ErrCellValue)
	}
	if n := utf8.RuneCountInString(value); n > excelize.TotalCellChars {
		return fmt.Errorf("%w: %d characters, limit is %d", ErrCellValue, n, excelize.TotalCellChars)
	}
	for _, r := range value {
		if !isXMLChar(r) {
			return fmt.Errorf("%w: control character %U", ErrCellValue, r)
		}
	}
	return nil
}

func isXMLChar(r rune) bool {
	return r == '\t' || r == '\n' || r == '\r' ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}
