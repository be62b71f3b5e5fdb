package logging

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// RotatingJSONLStore stores records in a JSONL file with automatic rotation.
type RotatingJSONLStore struct {
	logger *lumberjack.Logger
	path   string
	mu     sync.Mutex
}

// NewRotatingJSONLStore creates a store with rotation options in megabytes and days.
func NewRotatingJSONLStore(path string, maxSizeMB, maxBackups, maxAgeDays int) (*RotatingJSONLStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}
	return &RotatingJSONLStore{logger: lj, path: path}, nil
}

// Append writes the record and triggers rotation if needed.
func (s *RotatingJSONLStore) Append(_ context.Context, rec AdmissionRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.logger.Write(append(b, '\n'))
	return err
}

// Query reads the active file and every rotated backup, oldest first.
func (s *RotatingJSONLStore) Query(_ context.Context, q LogQuery) ([]AdmissionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ext := filepath.Ext(s.path)
	prefix := s.path[:len(s.path)-len(ext)]
	backups, err := filepath.Glob(prefix + "-*" + ext)
	if err != nil {
		return nil, err
	}
	// lumberjack backup names embed a sortable timestamp
	sort.Strings(backups)
	var res []AdmissionRecord
	for _, name := range append(backups, s.path) {
		f, err := os.Open(name)
		if err != nil {
			continue
		}
		res, err = scanRecords(f, q, res)
		_ = f.Close()
		if err != nil {
			return nil, err
		}
	}
	return limit(res, q.Limit), nil
}

// Close closes the underlying writer.
func (s *RotatingJSONLStore) Close() error {
	return s.logger.Close()
}
