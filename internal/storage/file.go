package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/zhouzirui/mindful/client/pkg/logger"
)

var errCorruptFile = errors.New("parse storage file")

// FileKV keeps every key in a single JSON object on disk.
// Each Set/Delete rewrites the whole file through a temp file + rename.
// A file that no longer parses is moved to <path>.corrupt on the next write.
type FileKV struct {
	mu   sync.Mutex
	path string
	log  *logrus.Entry
}

// NewFileKV returns a FileKV rooted at path. The file is created on first write.
func NewFileKV(path string, log *logrus.Logger) (*FileKV, error) {
	if path == "" {
		return nil, errors.New("storage path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileKV{path: path, log: logger.Component(log, "storage.file")}, nil
}

func (f *FileKV) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, err := f.read()
	if err != nil {
		return "", false, err
	}
	v, ok := items[key]
	return v, ok, nil
}

func (f *FileKV) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, err := f.readForWrite()
	if err != nil {
		return err
	}
	items[key] = value
	return f.write(items)
}

func (f *FileKV) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	items, err := f.readForWrite()
	if err != nil {
		return err
	}
	if _, ok := items[key]; !ok {
		return nil
	}
	delete(items, key)
	return f.write(items)
}

func (f *FileKV) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read storage file: %w", err)
	}
	items := make(map[string]string)
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %w", errCorruptFile, err)
	}
	return items, nil
}

// readForWrite 遇到损坏文件时从空状态重新开始
func (f *FileKV) readForWrite() (map[string]string, error) {
	items, err := f.read()
	if !errors.Is(err, errCorruptFile) {
		return items, err
	}
	backup := f.path + ".corrupt"
	if renameErr := os.Rename(f.path, backup); renameErr != nil {
		f.log.WithError(renameErr).Warn("could not keep corrupted storage file")
	}
	f.log.WithError(err).WithField("backup", backup).Warn("storage file corrupted, starting empty")
	return make(map[string]string), nil
}

func (f *FileKV) write(items map[string]string) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write storage file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace storage file: %w", err)
	}
	return nil
}

var _ KV = (*FileKV)(nil)
