package cardfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/memoriz/internal/deck"
)

// ErrNoEntries is returned when a card file yields no usable rows.
var ErrNoEntries = errors.New("cardfile: no cards in file")

// Options control how a card file is read. The first column is the
// prompt, the second the response; remaining columns are ignored.
type Options struct {
	Sheet     string // spreadsheet sheet name
	HasHeader bool   // skip the first row
}

// DefaultOptions reads Sheet1 and skips a header row.
func DefaultOptions() Options {
	return Options{Sheet: "Sheet1", HasHeader: true}
}

// Read loads prompt/response seeds from a spreadsheet (.xlsx, .xlsm) or
// CSV file, dispatching on the file extension. Fully blank rows are
// skipped; a row with only one side filled fails the whole read, so a
// half-written card can never slip into a deck silently.
func Read(path string, opts Options) ([]deck.Seed, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return readCSV(path, opts)
	case ".xlsx", ".xlsm":
		return readExcel(path, opts)
	default:
		return nil, fmt.Errorf("cardfile: unsupported file type %q", ext)
	}
}

func readExcel(path string, opts Options) ([]deck.Seed, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(opts.Sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", opts.Sheet, err)
	}
	return seedsFromRows(rows, opts)
}

func readCSV(path string, opts Options) ([]deck.Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return seedsFromRows(rows, opts)
}

func seedsFromRows(rows [][]string, opts Options) ([]deck.Seed, error) {
	var seeds []deck.Seed
	for i, row := range rows {
		if opts.HasHeader && i == 0 {
			continue
		}
		prompt, response := cell(row, 0), cell(row, 1)
		if prompt == "" && response == "" {
			continue
		}
		if prompt == "" || response == "" {
			return nil, fmt.Errorf("cardfile: row %d has only one side filled", i+1)
		}
		seeds = append(seeds, deck.Seed{Prompt: prompt, Response: response})
	}
	if len(seeds) == 0 {
		return nil, ErrNoEntries
	}
	return seeds, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
