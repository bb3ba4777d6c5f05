package implementation

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"ai-storyteller-be/internal/entity"
	"ai-storyteller-be/internal/repository/contract"
)

// jsonSessionRepository keeps every session history in one JSON document on
// disk, read in full and rewritten in full on each call. A corrupt or
// missing document is treated as empty and recreated; other I/O errors
// propagate. The mutex serializes read-modify-write cycles so concurrent
// requests to the same store cannot drop each other's writes.
type jsonSessionRepository struct {
	path string
	mu   sync.Mutex
}

func NewJSONSessionRepository(path string) (contract.SessionRepository, error) {
	r := &jsonSessionRepository{path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := r.writeDB(map[string][]entity.Message{}); err != nil {
			return nil, fmt.Errorf("create session store: %w", err)
		}
	}
	return r, nil
}

func (r *jsonSessionRepository) GetHistory(ctx context.Context, sessionID string) ([]entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.loadDB()
	if err != nil {
		return nil, err
	}
	return db[sessionID], nil
}

func (r *jsonSessionRepository) SetHistory(ctx context.Context, sessionID string, history []entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.loadDB()
	if err != nil {
		return err
	}
	db[sessionID] = history
	return r.writeDB(db)
}

// loadDB reads the whole document. Unreadable or unparsable content resets
// the store to an empty document rather than failing the request.
func (r *jsonSessionRepository) loadDB() (map[string][]entity.Message, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			db := map[string][]entity.Message{}
			return db, r.writeDB(db)
		}
		return nil, fmt.Errorf("read session store: %w", err)
	}

	var db map[string][]entity.Message
	if err := json.Unmarshal(data, &db); err != nil {
		db = map[string][]entity.Message{}
		return db, r.writeDB(db)
	}
	if db == nil {
		db = map[string][]entity.Message{}
	}
	return db, nil
}

func (r *jsonSessionRepository) writeDB(db map[string][]entity.Message) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session store: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("write session store: %w", err)
	}
	return nil
}
