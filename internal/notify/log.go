package notify

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/localstore"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultLogSize = 50
	logKey         = "notification_log"
)

// LogEntry is one received notification as kept on the device.
type LogEntry struct {
	ID           string              `json:"id"`
	ReceivedAt   time.Time           `json:"received_at"`
	Notification domain.Notification `json:"notification"`
}

// Log is the bounded, newest-first list of received notifications.
type Log struct {
	mu   sync.Mutex
	kv   localstore.Store
	size int
	now  func() time.Time
}

func NewLog(kv localstore.Store, size int) *Log {
	if size <= 0 {
		size = DefaultLogSize
	}
	return &Log{kv: kv, size: size, now: time.Now}
}

// Append records n at the head of the log, evicting the oldest entries past the cap.
func (l *Log) Append(ctx context.Context, n domain.Notification) (LogEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load(ctx)
	if err != nil {
		return LogEntry{}, err
	}
	entry := LogEntry{ID: uuid.NewString(), ReceivedAt: l.now().UTC(), Notification: n}
	entries = append([]LogEntry{entry}, entries...)
	if len(entries) > l.size {
		entries = entries[:l.size]
	}
	if err := l.save(ctx, entries); err != nil {
		return LogEntry{}, err
	}
	return entry, nil
}

// Entries returns the log, newest first. An empty log is an empty slice.
func (l *Log) Entries(ctx context.Context) ([]LogEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx)
}

func (l *Log) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.kv.Delete(ctx, logKey)
}

func (l *Log) load(ctx context.Context) ([]LogEntry, error) {
	b, err := l.kv.Get(ctx, logKey)
	if errors.Is(err, localstore.ErrNotFound) {
		return []LogEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []LogEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (l *Log) save(ctx context.Context, entries []LogEntry) error {
	b, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return l.kv.Set(ctx, logKey, b)
}
