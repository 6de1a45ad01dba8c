// Package recordstore persists lists of comma-delimited records, one file
// per list, one record per line.
package recordstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Record is one line of a flat file. The first field is the identifier.
type Record []string

// ID returns the identifier field, or "" for an empty record
func (r Record) ID() string {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

// File is a flat file holding a full list of records
type File struct {
	path string
}

// NewFile returns a File stored at path. Nothing is touched on disk until
// Load or Save is called.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path
func (f *File) Path() string {
	return f.path
}

// Load reads every non-empty line as a record. A missing file holds no
// records yet and is not an error.
func (f *File) Load() ([]Record, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("open %s: %w", f.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records := []Record{}
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.path, err)
		}
		records = append(records, Record(fields))
	}
	return records, nil
}

// Save replaces the whole file with records, in order. The content is
// written to a temporary file in the same directory which is then renamed
// over the target, so readers never observe a partial write.
func (f *File) Save(records []Record) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("save %s: %w", f.path, err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("save %s: %w", f.path, err)
	}

	writer := csv.NewWriter(tmp)
	for _, record := range records {
		if err = writer.Write(record); err != nil {
			return fmt.Errorf("save %s: %w", f.path, err)
		}
	}
	writer.Flush()
	if err = writer.Error(); err != nil {
		return fmt.Errorf("save %s: %w", f.path, err)
	}

	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("save %s: %w", f.path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("save %s: %w", f.path, err)
	}
	if err = os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("save %s: %w", f.path, err)
	}
	return nil
}
