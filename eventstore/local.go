package eventstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type memoryStorage struct {
	mux  sync.Mutex
	byID map[string]History
	ids  []string

	// failWith, when set, is returned by every call. Lets tests exercise
	// infrastructure failures.
	failWith error
}

// GetLocalStorage returns a Storage in memory - good for tests!
func GetLocalStorage() Storage {
	return &memoryStorage{byID: map[string]History{}}
}

// GetFailingStorage returns a Storage whose every call fails with err.
func GetFailingStorage(err error) Storage {
	return &memoryStorage{byID: map[string]History{}, failWith: err}
}

func (m *memoryStorage) FindByAggregateID(_ context.Context, aggregateID string) (History, error) {
	m.mux.Lock()
	defer m.mux.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}

	all := m.byID[aggregateID]
	history := make(History, len(all))
	copy(history, all)
	sort.Sort(history)
	return history, nil
}

func (m *memoryStorage) FindAll(_ context.Context) ([]Record, error) {
	m.mux.Lock()
	defer m.mux.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}

	var records []Record
	for _, id := range m.ids {
		records = append(records, m.byID[id]...)
	}
	return records, nil
}

func (m *memoryStorage) Save(_ context.Context, record Record) error {
	m.mux.Lock()
	defer m.mux.Unlock()
	if m.failWith != nil {
		return m.failWith
	}

	for _, existing := range m.byID[record.AggregateID] {
		if existing.Version == record.Version {
			return fmt.Errorf("%w: aggregate %s already has version %d", ErrConcurrencyConflict, record.AggregateID, record.Version)
		}
	}

	if _, ok := m.byID[record.AggregateID]; !ok {
		m.ids = append(m.ids, record.AggregateID)
	}
	m.byID[record.AggregateID] = append(m.byID[record.AggregateID], record)
	return nil
}
