package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"registration/domain"
	"strings"
)

type csvRosterRepository struct {
	path string
}

func NewCSVRosterRepository(path string) domain.RosterRepo {
	return &csvRosterRepository{
		path: path,
	}
}

// Load returns the first column of the roster file, header excluded. No file
// means no roster is configured and yields an empty list.
func (rr *csvRosterRepository) Load(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(rr.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to open roster file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	departments := []string{}
	header := true
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read roster file: %w", err)
		}

		if header {
			header = false
			continue
		}

		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		departments = append(departments, row[0])
	}

	return departments, nil
}
