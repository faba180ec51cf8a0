package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Row maps column name to cell value for one data row.
type Row map[string]string

// Has reports whether the row's file carries column col.
func (r Row) Has(col string) bool {
	_, ok := r[col]
	return ok
}

// FileInfo describes a CSV file in the input directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// csvExt is matched case-sensitively: "BANK.CSV" is not picked up.
const csvExt = ".csv"

const utf8BOM = "\ufeff"

// ErrNoHeader is returned for a file without even a header line.
var ErrNoHeader = errors.New("no columns to parse from file")

// Scan returns the .csv files directly inside dir in listing order,
// following symlinks. Files whose path matches one of exclude are left out.
func Scan(dir string, exclude ...string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input dir: %w", err)
	}

	skip := make(map[string]bool, len(exclude))
	for _, p := range exclude {
		if abs, err := filepath.Abs(p); err == nil {
			skip[abs] = true
		}
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), csvExt) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if abs, err := filepath.Abs(path); err == nil && skip[abs] {
			continue
		}
		// Stat follows symlinks. An entry that cannot be stat'ed is still
		// listed so the read fails for that file alone.
		fi := FileInfo{Name: e.Name(), Path: path}
		if info, err := os.Stat(path); err == nil {
			if info.IsDir() {
				continue
			}
			fi.Size = info.Size()
		}
		files = append(files, fi)
	}
	return files, nil
}

// ReadRows parses a CSV stream with a header line into rows keyed by column.
// Ragged rows, bad quoting and invalid UTF-8 fail the whole read.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoHeader
	}

	header := records[0]
	header[0] = strings.TrimPrefix(header[0], utf8BOM)
	for _, col := range header {
		if !utf8.ValidString(col) {
			return nil, fmt.Errorf("header %q: invalid UTF-8", col)
		}
	}

	var rows []Row
	for i, rec := range records[1:] {
		row := make(Row, len(header))
		for j, col := range header {
			if !utf8.ValidString(rec[j]) {
				return nil, fmt.Errorf("row %d: column %s: invalid UTF-8", i+2, col)
			}
			row[col] = rec[j]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadFile opens path and reads its rows.
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := ReadRows(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return rows, nil
}
