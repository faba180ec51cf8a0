package merge

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/rs/zerolog"

	"github.com/finmerge/finmerge/internal/importer"
	"github.com/finmerge/finmerge/internal/model"
	"github.com/finmerge/finmerge/internal/normalize"
)

// Policy decides what a row that fails to normalize costs.
type Policy string

const (
	// PolicySkipFile drops the whole file, the same way a read failure does.
	PolicySkipFile Policy = "skip-file"
	// PolicySkipRow drops only the offending row.
	PolicySkipRow Policy = "skip-row"
	// PolicyAbort fails the run.
	PolicyAbort Policy = "abort"
)

// ParsePolicy validates a policy name.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(s); p {
	case PolicySkipFile, PolicySkipRow, PolicyAbort:
		return p, nil
	}
	return "", fmt.Errorf("unknown row error policy %q (want %s, %s or %s)",
		s, PolicySkipFile, PolicySkipRow, PolicyAbort)
}

// FileStatus is the outcome of one input file.
type FileStatus string

const (
	FileOK          FileStatus = "ok"
	FileReadFailed  FileStatus = "read-failed"
	FileRowRejected FileStatus = "row-rejected"
)

// FileReport summarizes what one input file contributed.
type FileReport struct {
	Name    string
	Status  FileStatus
	Records int
	Skipped int // rows matching neither shape
	BadRows int // rows dropped under PolicySkipRow
	Err     string
}

// Result summarizes a merge run.
type Result struct {
	Written    bool
	OutputPath string
	Records    int
	Files      []FileReport
}

// FailedFiles counts files that contributed nothing because of an error.
func (r *Result) FailedFiles() int {
	n := 0
	for _, f := range r.Files {
		if f.Status != FileOK {
			n++
		}
	}
	return n
}

// Merger reads every CSV in a folder and writes one date-sorted file.
type Merger struct {
	Normalizer *normalize.Normalizer
	Policy     Policy
	Log        zerolog.Logger
	Out        io.Writer // advisory status lines
}

// New returns a Merger with the default normalizer and PolicySkipFile.
func New(out io.Writer, log zerolog.Logger) *Merger {
	return &Merger{
		Normalizer: normalize.New(),
		Policy:     PolicySkipFile,
		Log:        log,
		Out:        out,
	}
}

// Run merges the .csv files in inputDir into outputPath. When no file
// yields a record nothing is written and Result.Written is false.
func (m *Merger) Run(inputDir, outputPath string) (*Result, error) {
	files, err := importer.Scan(inputDir, outputPath)
	if err != nil {
		return nil, err
	}
	m.Log.Debug().Str("dir", inputDir).Int("files", len(files)).Msg("scanned input")

	res := &Result{OutputPath: outputPath}
	var all []model.Record
	for _, f := range files {
		recs, report, err := m.processFile(f)
		if err != nil {
			return nil, err
		}
		res.Files = append(res.Files, report)
		all = append(all, recs...)
	}

	if len(all) == 0 {
		m.Log.Info().Str("dir", inputDir).Msg("no records found")
		fmt.Fprintln(m.Out, "No valid CSV files found for processing.")
		return res, nil
	}

	slices.SortStableFunc(all, func(a, b model.Record) int {
		return a.Date.Compare(b.Date)
	})

	if err := writeOutput(outputPath, all); err != nil {
		return nil, err
	}
	res.Written = true
	res.Records = len(all)

	m.Log.Info().Str("output", outputPath).Int("records", len(all)).Msg("merge complete")
	fmt.Fprintf(m.Out, "Merged file saved to %s\n", outputPath)
	return res, nil
}

// processFile normalizes one file. A non-nil error means the run must stop.
func (m *Merger) processFile(f importer.FileInfo) ([]model.Record, FileReport, error) {
	report := FileReport{Name: f.Name, Status: FileOK}
	log := m.Log.With().Str("file", f.Name).Logger()

	rows, err := importer.ReadFile(f.Path)
	if err != nil {
		log.Warn().Err(err).Msg("read failed")
		fmt.Fprintf(m.Out, "Error reading %s: %v\n", f.Path, err)
		report.Status = FileReadFailed
		report.Err = err.Error()
		return nil, report, nil
	}

	var recs []model.Record
	for i, row := range rows {
		rec, ok, err := m.Normalizer.Normalize(row)
		if err != nil {
			rowErr := fmt.Errorf("%s row %d: %w", f.Name, i+2, err)
			switch m.Policy {
			case PolicyAbort:
				return nil, report, rowErr
			case PolicySkipRow:
				log.Warn().Err(err).Int("row", i+2).Msg("row skipped")
				fmt.Fprintf(m.Out, "Skipping row: %v\n", rowErr)
				report.BadRows++
				continue
			default:
				log.Warn().Err(err).Int("row", i+2).Msg("file rejected")
				fmt.Fprintf(m.Out, "Error processing %s: %v\n", f.Path, rowErr)
				report.Status = FileRowRejected
				report.Err = rowErr.Error()
				return nil, report, nil
			}
		}
		if !ok {
			report.Skipped++
			continue
		}
		recs = append(recs, rec)
	}

	report.Records = len(recs)
	log.Debug().Int("records", report.Records).Int("skipped", report.Skipped).Msg("file processed")
	return recs, report, nil
}

func writeOutput(path string, recs []model.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}

	if err := normalize.WriteRecords(f, recs); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
