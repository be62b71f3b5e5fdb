package logging

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"
)

// JSONLStore stores records in a JSONL file, one object per line.
type JSONLStore struct {
	path string
	mu   sync.Mutex
}

func NewJSONLStore(path string) (*JSONLStore, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, err
	}
	if cerr := f.Close(); cerr != nil {
		return nil, cerr
	}
	return &JSONLStore{path: path}, nil
}

func (s *JSONLStore) Append(_ context.Context, rec AdmissionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return json.NewEncoder(f).Encode(rec)
}

func (s *JSONLStore) Query(_ context.Context, q LogQuery) ([]AdmissionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	res, err := scanRecords(f, q, nil)
	if err != nil {
		return nil, err
	}
	return limit(res, q.Limit), nil
}

func (s *JSONLStore) Close() error { return nil }

// scanRecords appends the records of r matching q to dst. Lines that do not
// decode are skipped.
func scanRecords(r io.Reader, q LogQuery, dst []AdmissionRecord) ([]AdmissionRecord, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		var rec AdmissionRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue
		}
		if q.Match(rec) {
			dst = append(dst, rec)
		}
	}
	return dst, scanner.Err()
}
