package ratesheet

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/loanq-dev/qualifier/internal/model"
)

//go:embed sample_rate_sheet.csv
var sampleCSV []byte

// ErrExists is returned by Save when the output path is already taken.
var ErrExists = errors.New("file already exists")

// FileInfo describes a rate sheet found in a data directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// Load reads the rate sheet at path.
func Load(path string) (model.LoanTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.LoanTable{}, fmt.Errorf("opening rate sheet: %w", err)
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return model.LoanTable{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Save writes t to path, creating parent directories as needed. It never
// overwrites: if path exists the error wraps ErrExists.
func Save(path string, t model.LoanTable) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%s: %w", path, ErrExists)
		}
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()

	if err := WriteTable(f, t); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Exists reports whether something already occupies path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Scan returns the CSV files directly inside dir. A missing dir yields no files.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading data dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
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

// Sample returns the rate sheet bundled with the binary.
func Sample() (model.LoanTable, error) {
	return ReadTable(bytes.NewReader(sampleCSV))
}

// SampleCSV returns the raw bundled rate sheet.
func SampleCSV() []byte {
	return bytes.Clone(sampleCSV)
}
