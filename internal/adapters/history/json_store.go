package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/osmoflow/rosim/internal/domain"
)

const jsonFileName = "calculation_history.json"

// JSONStore keeps history as a document-oriented JSON list: each entry is
// the result fields plus a timestamp key. Appends rewrite the file
// atomically (write to temp file, then rename) so a crash cannot corrupt
// prior records.
type JSONStore struct {
	mu   sync.Mutex
	path string
}

// NewJSONStore creates a JSONStore storing its file under dir.
func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{path: filepath.Join(dir, jsonFileName)}
}

// Append adds one record after all existing ones.
func (s *JSONStore) Append(ctx context.Context, rec domain.HistoryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.readDocs()
	if err != nil {
		return err
	}
	docs = append(docs, toDoc(rec))

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	b, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Load returns all stored records in insertion order.
// Returns an empty slice if the file does not exist yet.
func (s *JSONStore) Load(ctx context.Context) ([]domain.HistoryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, err := s.readDocs()
	if err != nil {
		return nil, err
	}

	records := make([]domain.HistoryRecord, 0, len(docs))
	for _, d := range docs {
		rec, err := d.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Path returns the JSON file path.
func (s *JSONStore) Path() string { return s.path }

func (s *JSONStore) readDocs() ([]recordDoc, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var docs []recordDoc
	if err := json.Unmarshal(b, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
