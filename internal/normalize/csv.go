package normalize

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finmerge/finmerge/internal/model"
)

// Header is the column order of the merged output file.
var Header = []string{"Date", "Value", "Category", "ID", "Description", "Type"}

const (
	numFields   = 6
	colDate     = 0
	colValue    = 1
	colCategory = 2
	colID       = 3
	colDesc     = 4
	colType     = 5
)

// MarshalRecord converts a record to an output row.
func MarshalRecord(rec model.Record) []string {
	row := make([]string, numFields)
	row[colDate] = rec.Date.Format(OutputDateFormat)
	row[colValue] = rec.Amount.String()
	row[colCategory] = rec.Category
	row[colID] = rec.ID
	row[colDesc] = rec.Description
	row[colType] = string(rec.Kind)
	return row
}

// UnmarshalRecord converts an output row back to a record.
func UnmarshalRecord(row []string) (model.Record, error) {
	if len(row) != numFields {
		return model.Record{}, fmt.Errorf("expected %d fields, got %d", numFields, len(row))
	}

	date, err := time.Parse(OutputDateFormat, row[colDate])
	if err != nil {
		return model.Record{}, fmt.Errorf("parsing date %q: %w", row[colDate], err)
	}

	amount, err := decimal.NewFromString(row[colValue])
	if err != nil {
		return model.Record{}, fmt.Errorf("parsing value %q: %w", row[colValue], err)
	}

	rec := model.Record{
		Date:        date,
		Amount:      amount,
		Category:    row[colCategory],
		ID:          row[colID],
		Description: row[colDesc],
		Kind:        model.Kind(row[colType]),
	}
	if err := rec.Validate(); err != nil {
		return model.Record{}, err
	}
	return rec, nil
}

// WriteRecords writes the header and one row per record.
func WriteRecords(w io.Writer, recs []model.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, rec := range recs {
		if err := cw.Write(MarshalRecord(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadRecords reads a merged output file.
func ReadRecords(r io.Reader) ([]model.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading merged CSV: %w", err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}

	var recs []model.Record
	for i, row := range rows[1:] {
		rec, err := UnmarshalRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
