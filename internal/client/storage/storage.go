package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// FileStore keeps every key in a single JSON object on disk and rewrites the
// file on each mutation.
type FileStore struct {
	path   string
	log    *zap.Logger
	mu     sync.Mutex
	values map[string]string
}

// NewFileStore loads the JSON file at path, or starts empty if it does not
// exist yet. A file that cannot be decoded is moved aside to path+".corrupt"
// and the store starts empty.
func NewFileStore(path string, log *zap.Logger) (*FileStore, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fs := &FileStore{path: path, log: log, values: make(map[string]string)}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *FileStore) load() error {
	f, err := os.Open(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open store file: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&fs.values); err != nil {
		f.Close()
		fs.discard(err)
		return nil
	}
	if fs.values == nil {
		fs.values = make(map[string]string)
	}
	return nil
}

func (fs *FileStore) discard(decodeErr error) {
	fs.values = make(map[string]string)
	aside := fs.path + ".corrupt"
	if err := os.Rename(fs.path, aside); err != nil {
		fs.log.Warn("store file is corrupt, starting empty",
			zap.String("path", fs.path), zap.Error(decodeErr), zap.NamedError("rename_error", err))
		return
	}
	fs.log.Warn("store file is corrupt, moved aside and starting empty",
		zap.String("path", fs.path), zap.String("moved_to", aside), zap.Error(decodeErr))
}

// save writes through a temp file so a crash never leaves a truncated store.
func (fs *FileStore) save() error {
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(fs.path), ".store-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := json.NewEncoder(tmp).Encode(fs.values); err != nil {
		tmp.Close()
		return fmt.Errorf("encode store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), fs.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

func (fs *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	v, ok := fs.values[key]
	return v, ok, nil
}

func (fs *FileStore) Set(_ context.Context, key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	prev, had := fs.values[key]
	fs.values[key] = value
	if err := fs.save(); err != nil {
		if had {
			fs.values[key] = prev
		} else {
			delete(fs.values, key)
		}
		return err
	}
	return nil
}

func (fs *FileStore) Remove(_ context.Context, key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	prev, had := fs.values[key]
	if !had {
		return nil
	}
	delete(fs.values, key)
	if err := fs.save(); err != nil {
		fs.values[key] = prev
		return err
	}
	return nil
}

func (fs *FileStore) Close() error { return nil }
