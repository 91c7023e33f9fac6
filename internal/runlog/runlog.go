// Package runlog records one CSV row per mapping variant of every run.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entry is one row in the run log.
type Entry struct {
	Timestamp     time.Time
	RunID         string
	Command       string
	Variant       string
	Ledgers       int
	Mapped        int
	Unmapped      int
	Issues        int
	HasDifference bool
	CommitHash    string
}

// Header is the CSV header for run-log.csv.
const Header = "timestamp,run_id,command,variant,ledgers,mapped,unmapped,issues,has_difference,commit_hash"

const (
	numFields        = 10
	logDir           = "logs"
	logFile          = "logs/run-log.csv"
	colTimestamp     = 0
	colRunID         = 1
	colCommand       = 2
	colVariant       = 3
	colLedgers       = 4
	colMapped        = 5
	colUnmapped      = 6
	colIssues        = 7
	colHasDifference = 8
	colCommitHash    = 9
)

// NewRunID returns a fresh identifier shared by the entries of one run.
func NewRunID() string {
	return uuid.NewString()
}

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colCommand] = e.Command
	row[colVariant] = e.Variant
	row[colLedgers] = strconv.Itoa(e.Ledgers)
	row[colMapped] = strconv.Itoa(e.Mapped)
	row[colUnmapped] = strconv.Itoa(e.Unmapped)
	row[colIssues] = strconv.Itoa(e.Issues)
	row[colHasDifference] = strconv.FormatBool(e.HasDifference)
	row[colCommitHash] = e.CommitHash
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	if _, err := uuid.Parse(record[colRunID]); err != nil {
		return Entry{}, fmt.Errorf("parsing run_id %q: %w", record[colRunID], err)
	}

	var counts [4]int
	for i, col := range []int{colLedgers, colMapped, colUnmapped, colIssues} {
		n, err := strconv.Atoi(record[col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing %s %q: %w", strings.Split(Header, ",")[col], record[col], err)
		}
		counts[i] = n
	}
	diff, err := strconv.ParseBool(record[colHasDifference])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing has_difference %q: %w", record[colHasDifference], err)
	}

	return Entry{
		Timestamp:     ts,
		RunID:         record[colRunID],
		Command:       record[colCommand],
		Variant:       record[colVariant],
		Ledgers:       counts[0],
		Mapped:        counts[1],
		Unmapped:      counts[2],
		Issues:        counts[3],
		HasDifference: diff,
		CommitHash:    record[colCommitHash],
	}, nil
}

// Append writes entries to <repoRoot>/logs/run-log.csv, creating the file and header if needed.
// Entries without a timestamp are stamped with the current time.
func Append(repoRoot string, entries []Entry) error {
	dir := filepath.Join(repoRoot, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(repoRoot, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	now := time.Now().UTC().Truncate(time.Second)
	for i, e := range entries {
		if e.Timestamp.IsZero() {
			e.Timestamp = now
		}
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <repoRoot>/logs/run-log.csv.
// Returns an empty slice if the file does not exist.
func Read(repoRoot string) ([]Entry, error) {
	path := filepath.Join(repoRoot, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

// Runs groups entries by run id, newest run first.
func Runs(entries []Entry) [][]Entry {
	index := make(map[string]int)
	var runs [][]Entry
	for _, e := range entries {
		i, ok := index[e.RunID]
		if !ok {
			i = len(runs)
			index[e.RunID] = i
			runs = append(runs, nil)
		}
		runs[i] = append(runs[i], e)
	}
	for l, r := 0, len(runs)-1; l < r; l, r = l+1, r-1 {
		runs[l], runs[r] = runs[r], runs[l]
	}
	return runs
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading run log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
