// Package storetest has an in-memory store.Persistence for tests.
package storetest

import (
	"context"
	"sync"

	"tableflip.dev/trip/pkg/itinerary"
	"tableflip.dev/trip/pkg/store"
)

// Memory keeps the document and theme in memory. Set Err to make saves fail.
type Memory struct {
	mu    sync.Mutex
	doc   *itinerary.Document
	theme store.Theme
	saves int

	Err error
}

var _ store.Persistence = (*Memory)(nil)

func (m *Memory) Load(context.Context) (itinerary.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		return itinerary.Document{}, store.ErrNoDocument
	}
	return m.doc.Clone(), nil
}

func (m *Memory) Save(_ context.Context, doc itinerary.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.Err != nil {
		return m.Err
	}
	cp := doc.Clone()
	m.doc = &cp
	return nil
}

func (m *Memory) Theme(context.Context) (store.Theme, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.theme == "" {
		return store.ThemeLight, nil
	}
	return m.theme, nil
}

func (m *Memory) SetTheme(_ context.Context, t store.Theme) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.theme = t
	return nil
}

func (m *Memory) Reset(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = nil
	m.theme = ""
	return nil
}

// Watch never reports anything.
func (m *Memory) Watch(context.Context) (<-chan store.Event, error) {
	return nil, nil
}

// Saved returns the last saved document and the number of save attempts.
func (m *Memory) Saved() (itinerary.Document, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.doc == nil {
		return itinerary.Document{}, m.saves
	}
	return m.doc.Clone(), m.saves
}
