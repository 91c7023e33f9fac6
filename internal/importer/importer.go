// Package importer turns trial-balance exports into ledgers.
package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cleared-dev/ledgermap/internal/ledger"
	"github.com/cleared-dev/ledgermap/internal/model"
)

// Parser converts a trial-balance file into sign-normalised ledgers.
type Parser interface {
	Parse(r io.Reader) ([]model.LedgerAccount, error)
	Format() string
}

// Registry holds parsers by format, which is also the file extension.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// Format returns the lower-case extension without the dot.
func (f FileInfo) Format() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(f.Name)), ".")
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// supports reports whether a file extension has a parser.
func (r *Registry) supports(name string) bool {
	return r.Get(FileInfo{Name: name}.Format()) != nil
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry(opts Options) *Registry {
	r := NewRegistry()
	r.Register(&CSVParser{Options: opts})
	r.Register(&XLSXParser{Options: opts})
	return r
}

// importDir is the subdirectory for trial-balance exports.
const importDir = "import"

// processedDir is the subdirectory for imported files.
const processedDir = "import/processed"

// Scan returns importable files in <repoRoot>/import/.
func (r *Registry) Scan(repoRoot string) ([]FileInfo, error) {
	dir := filepath.Join(repoRoot, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !r.supports(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(repoRoot, fileName string) error {
	src := filepath.Join(repoRoot, importDir, fileName)
	dstDir := filepath.Join(repoRoot, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}

// Result summarises one imported file.
type Result struct {
	File       string `json:"file"`
	Parsed     int    `json:"parsed"`
	Added      int    `json:"added"`
	Duplicates int    `json:"duplicates"`
}

// Import parses a file, merges it into set and moves it to processed.
// Duplicate ledgers are counted, not fatal.
func (r *Registry) Import(repoRoot string, file FileInfo, set *ledger.Set) (Result, error) {
	res := Result{File: file.Name}
	p := r.Get(file.Format())
	if p == nil {
		return res, fmt.Errorf("no parser for %s", file.Name)
	}

	f, err := os.Open(file.Path)
	if err != nil {
		return res, fmt.Errorf("opening %s: %w", file.Name, err)
	}
	ledgers, err := p.Parse(f)
	f.Close()
	if err != nil {
		return res, fmt.Errorf("parsing %s: %w", file.Name, err)
	}
	res.Parsed = len(ledgers)

	added, err := set.Merge(ledgers)
	res.Added = added
	var dup *ledger.DuplicateLedgerError
	switch {
	case errors.As(err, &dup):
		res.Duplicates = dup.Count
		logrus.WithFields(logrus.Fields{"file": file.Name, "duplicates": dup.Count}).Warn("skipped duplicate ledgers")
	case err != nil:
		return res, err
	}

	if err := MarkProcessed(repoRoot, file.Name); err != nil {
		return res, err
	}
	logrus.WithFields(logrus.Fields{"file": file.Name, "parsed": res.Parsed, "added": res.Added}).Info("imported trial balance")
	return res, nil
}
