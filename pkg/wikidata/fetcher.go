package wikidata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// MapFetcher serves entities from memory. It backs offline crawls over a
// dump of wbgetentities responses and records how often each id was
// requested.
type MapFetcher struct {
	entities map[string]*Entity
	failures map[string]error

	mu    sync.Mutex
	calls map[string]int
	total int
}

// NewMapFetcher returns a fetcher serving entities keyed by id.
func NewMapFetcher(entities map[string]*Entity) *MapFetcher {
	m := &MapFetcher{
		entities: make(map[string]*Entity, len(entities)),
		failures: make(map[string]error),
		calls:    make(map[string]int),
	}
	for id, e := range entities {
		m.entities[id] = e
	}
	return m
}

// LoadMapFetcher reads a document of the form {"entities": {...}}, the shape
// returned by wbgetentities, possibly holding many entities.
func LoadMapFetcher(r io.Reader) (*MapFetcher, error) {
	var content getEntitiesResponse
	if err := json.NewDecoder(r).Decode(&content); err != nil {
		return nil, fmt.Errorf("failed to decode entity dump: %w", err)
	}
	entities := make(map[string]*Entity, len(content.Entities))
	for id, e := range content.Entities {
		if e == nil || e.Missing {
			continue
		}
		entities[id] = e
	}
	return NewMapFetcher(entities), nil
}

// FailWith makes every request for id return err.
func (m *MapFetcher) FailWith(id string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[id] = err
}

// FetchEntity implements EntityFetcher.
func (m *MapFetcher) FetchEntity(ctx context.Context, id string) (*Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.calls[id]++
	m.total++
	failure := m.failures[id]
	m.mu.Unlock()

	if failure != nil {
		return nil, failure
	}
	e, ok := m.entities[id]
	if !ok {
		return nil, &FetchError{ID: id, Err: ErrEntityNotFound}
	}
	return e, nil
}

// Calls returns how many times id was requested.
func (m *MapFetcher) Calls(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[id]
}

// TotalCalls returns the number of requests served.
func (m *MapFetcher) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total
}
