package storage

import (
	"os"
	"path/filepath"
)

// FileStorage appends entries to a single text file, one per line.
// It is not safe for concurrent writers.
type FileStorage struct {
	Path string
	f    *os.File
}

func NewFileStorage(path string) (*FileStorage, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &LogWriteError{Path: path, Err: err}
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, &LogWriteError{Path: path, Err: err}
	}
	return &FileStorage{Path: path, f: f}, nil
}

// Append writes the entry and syncs the file before returning.
func (fs *FileStorage) Append(entry Entry) error {
	if _, err := fs.f.WriteString(FormatEntry(entry) + "\n"); err != nil {
		return &LogWriteError{Path: fs.Path, Err: err}
	}
	if err := fs.f.Sync(); err != nil {
		return &LogWriteError{Path: fs.Path, Err: err}
	}
	return nil
}

func (fs *FileStorage) Close() error {
	return fs.f.Close()
}
