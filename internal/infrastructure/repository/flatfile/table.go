package flatfile

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/mrops-br/inventory-api/internal/domain"
	"github.com/mrops-br/inventory-api/internal/infrastructure/storage/recordstore"
)

// codec converts one entity to and from its flat record
type codec[T any] struct {
	encode func(T) recordstore.Record
	decode func(recordstore.Record) (T, error)
	id     func(T) string
}

// table is the in-memory list for one entity type, kept in lockstep with
// its file. Writes persist the new list first and only then swap it in,
// so a failed save leaves both sides unchanged.
type table[T any] struct {
	mu    sync.RWMutex
	file  *recordstore.File
	codec codec[T]
	rows  []T
}

func openTable[T any](file *recordstore.File, c codec[T]) (*table[T], error) {
	records, err := file.Load()
	if err != nil {
		return nil, err
	}

	rows := make([]T, 0, len(records))
	for i, record := range records {
		row, err := c.decode(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", file.Path(), i+1, err)
		}
		rows = append(rows, row)
	}

	return &table[T]{file: file, codec: c, rows: rows}, nil
}

func (t *table[T]) all() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rows := make([]T, len(t.rows))
	copy(rows, t.rows)
	return rows
}

func (t *table[T]) count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// findFirst returns the first row, in file order, accepted by match
func (t *table[T]) findFirst(match func(T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, row := range t.rows {
		if match(row) {
			return row, true
		}
	}
	var zero T
	return zero, false
}

func (t *table[T]) findByID(id string) (T, bool) {
	return t.findFirst(func(row T) bool { return t.codec.id(row) == id })
}

func (t *table[T]) isUnique(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.isUniqueLocked(id)
}

func (t *table[T]) isUniqueLocked(id string) bool {
	for _, row := range t.rows {
		if t.codec.id(row) == id {
			return false
		}
	}
	return true
}

// insert appends row and rewrites the file
func (t *table[T]) insert(row T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := make([]T, len(t.rows), len(t.rows)+1)
	copy(next, t.rows)
	next = append(next, row)

	return t.commitLocked(next)
}

// replace swaps the row sharing row's id and rewrites the file. It reports
// false when no such row exists.
func (t *table[T]) replace(row T) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.codec.id(row)
	for i := range t.rows {
		if t.codec.id(t.rows[i]) != id {
			continue
		}
		next := make([]T, len(t.rows))
		copy(next, t.rows)
		next[i] = row
		return true, t.commitLocked(next)
	}
	return false, nil
}

func (t *table[T]) commitLocked(next []T) error {
	records := make([]recordstore.Record, len(next))
	for i, row := range next {
		records[i] = t.codec.encode(row)
	}
	if err := t.file.Save(records); err != nil {
		return err
	}
	t.rows = next
	return nil
}

// nextID returns prefix followed by one more than the highest sequence seen,
// never less than the row count, skipping any id already taken.
func (t *table[T]) nextID(prefix string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	seq := len(t.rows)
	for _, row := range t.rows {
		if n, ok := sequenceOf(t.codec.id(row), prefix); ok && n > seq {
			seq = n
		}
	}
	for {
		seq++
		candidate := prefix + strconv.Itoa(seq)
		if t.isUniqueLocked(candidate) {
			return candidate
		}
	}
}

func sequenceOf(id, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(id, prefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrCorruptRecord}, args...)...)
}
