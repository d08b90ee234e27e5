package binsort

import (
	"encoding/json"
	"fmt"
	"time"
)

// Entry is one high-score record.
type Entry struct {
	Name   string    `json:"name"`
	Points int       `json:"points"`
	Date   time.Time `json:"date"`
}

// KeyValue is the persistence collaborator for the high-score list.
// Get returns a nil value and no error when the key is absent.
type KeyValue interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

// Updater is implemented by stores that can read, change and write a
// key atomically. Boards shared by several games commit through it.
type Updater interface {
	Update(key string, fn func(old []byte) ([]byte, error)) error
}

// Board keeps the top entries sorted by points, highest first. Entries
// with equal points keep their insertion order.
type Board struct {
	limit   int
	entries []Entry
}

// NewBoard creates an empty board keeping at most limit entries.
func NewBoard(limit int) *Board {
	return &Board{limit: max(limit, 1)}
}

// Limit returns the board capacity.
func (b *Board) Limit() int {
	return b.limit
}

// Record inserts an entry and returns its zero-based rank, or -1 if it
// did not make the list.
func (b *Board) Record(e Entry) int {
	pos := len(b.entries)
	for i, cur := range b.entries {
		if e.Points > cur.Points {
			pos = i
			break
		}
	}
	if pos >= b.limit {
		return -1
	}

	b.entries = append(b.entries, Entry{})
	copy(b.entries[pos+1:], b.entries[pos:])
	b.entries[pos] = e
	if len(b.entries) > b.limit {
		b.entries = b.entries[:b.limit]
	}
	return pos
}

// Qualifies reports whether a score would enter the board.
func (b *Board) Qualifies(points int) bool {
	if len(b.entries) < b.limit {
		return true
	}
	return points > b.entries[len(b.entries)-1].Points
}

// Entries returns a copy of the list.
func (b *Board) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Load replaces the board with the list stored under key. A missing key
// leaves the board empty.
func (b *Board) Load(kv KeyValue, key string) error {
	data, err := kv.Get(key)
	if err != nil {
		return fmt.Errorf("binsort: load high scores: %w", err)
	}
	return b.decode(data)
}

// decode replaces the entries with a stored JSON list.
func (b *Board) decode(data []byte) error {
	b.entries = b.entries[:0]
	if len(data) == 0 {
		return nil
	}

	var stored []Entry
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("binsort: decode high scores: %w", err)
	}
	for _, e := range stored {
		b.Record(e)
	}
	return nil
}

// Commit records e on top of the list currently stored under key and
// writes the result back, keeping entries added by other games sharing
// kv. The board ends up holding the merged list. If the store fails the
// entry is still recorded locally and the error is returned.
func (b *Board) Commit(kv KeyValue, key string, e Entry) (int, error) {
	rank, recorded := -1, false
	merge := func(old []byte) ([]byte, error) {
		if err := b.decode(old); err != nil {
			return nil, err
		}
		rank, recorded = b.Record(e), true
		data, err := json.Marshal(b.Entries())
		if err != nil {
			return nil, fmt.Errorf("binsort: encode high scores: %w", err)
		}
		return data, nil
	}

	var err error
	if u, ok := kv.(Updater); ok {
		err = u.Update(key, merge)
	} else {
		err = commitPlain(kv, key, merge)
	}
	if err != nil && !recorded {
		rank = b.Record(e)
	}
	return rank, err
}

// commitPlain is the Get-merge-Put fallback for stores without Updater.
func commitPlain(kv KeyValue, key string, merge func([]byte) ([]byte, error)) error {
	old, err := kv.Get(key)
	if err != nil {
		return fmt.Errorf("binsort: load high scores: %w", err)
	}
	data, err := merge(old)
	if err != nil {
		return err
	}
	if err := kv.Put(key, data); err != nil {
		return fmt.Errorf("binsort: save high scores: %w", err)
	}
	return nil
}

// Save writes the list under key as a JSON array.
func (b *Board) Save(kv KeyValue, key string) error {
	data, err := json.Marshal(b.Entries())
	if err != nil {
		return fmt.Errorf("binsort: encode high scores: %w", err)
	}
	if err := kv.Put(key, data); err != nil {
		return fmt.Errorf("binsort: save high scores: %w", err)
	}
	return nil
}
