package syncq

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const queueFile = "pending.json"

// Entry is one queued text awaiting sync
type Entry struct {
	ID       string    `json:"id"`
	Text     string    `json:"text"`
	QueuedAt time.Time `json:"queued_at"`
}

// queueData is the JSON structure of the on-disk queue
type queueData struct {
	Entries []Entry `json:"entries"`
	Version string  `json:"version"`
}

// Queue persists texts that were saved while offline. Entries survive
// restarts; they are removed only after a successful flush.
type Queue struct {
	mu       sync.Mutex
	filePath string
}

// NewQueue creates a queue stored under the library's queue directory
func NewQueue(baseDir string) *Queue {
	return &Queue{
		filePath: filepath.Join(baseDir, "queue", queueFile),
	}
}

// Enqueue appends a text to the offline queue
func (q *Queue) Enqueue(id, text string) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	entries, err := q.load()
	if err != nil {
		return err
	}
	entries = append(entries, Entry{
		ID:       id,
		Text:     text,
		QueuedAt: time.Now(),
	})
	return q.save(entries)
}

// Pending returns the queued entries in enqueue order
func (q *Queue) Pending() ([]Entry, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.load()
}

// Len returns the number of queued entries
func (q *Queue) Len() int {
	entries, err := q.Pending()
	if err != nil {
		return 0
	}
	return len(entries)
}

// Flush hands each queued entry to fn in order. Entries are removed only
// after fn succeeds; the first failure stops the flush and keeps the
// remaining entries queued. Returns how many entries were delivered.
func (q *Queue) Flush(fn func(Entry) error) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	entries, err := q.load()
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, entry := range entries {
		if err := fn(entry); err != nil {
			if saveErr := q.save(entries[delivered:]); saveErr != nil {
				return delivered, fmt.Errorf("sync failed (%v) and queue rewrite failed: %w", err, saveErr)
			}
			return delivered, fmt.Errorf("failed to sync entry %s: %w", entry.ID, err)
		}
		delivered++
	}

	if err := q.save(nil); err != nil {
		return delivered, err
	}
	return delivered, nil
}

func (q *Queue) load() ([]Entry, error) {
	if _, err := os.Stat(q.filePath); os.IsNotExist(err) {
		return nil, nil
	}

	data, err := os.ReadFile(q.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read sync queue: %w", err)
	}

	var qd queueData
	if err := json.Unmarshal(data, &qd); err != nil {
		return nil, fmt.Errorf("failed to parse sync queue: %w", err)
	}
	return qd.Entries, nil
}

func (q *Queue) save(entries []Entry) error {
	if err := os.MkdirAll(filepath.Dir(q.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create queue directory: %w", err)
	}

	qd := queueData{
		Entries: entries,
		Version: "1.0",
	}
	jsonData, err := json.MarshalIndent(qd, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sync queue: %w", err)
	}

	if err := os.WriteFile(q.filePath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write sync queue: %w", err)
	}
	return nil
}
