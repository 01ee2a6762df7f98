package persist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps the save in one file on local disk. Writes go through a
// temp file and rename so a crash mid-write never truncates the slot.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("save path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create save dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (f *FileStore) Load(_ context.Context) ([]byte, error) {
	blob, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("read save: %w", err)
	}
	return blob, nil
}

func (f *FileStore) Save(_ context.Context, blob []byte) error {
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (f *FileStore) Close() {}
