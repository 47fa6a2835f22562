// Package store holds the client's in-memory view of backend state: the case
// list, the open case detail with its evidence, and the chat transcript.
//
// Each slice of state has exactly one writing component (case operations write
// the list, the upload orchestrator writes the evidence list, the analysis
// poller writes the case detail, the chat session writes the transcript), so
// consistency comes from single-writer discipline rather than from callers
// coordinating locks.
package store

import (
	"sync"

	"github.com/plaide-ai/intake/internal/model"
)

// Store is the reactive in-memory cache behind the UI layer.
type Store struct {
	mu          sync.RWMutex
	cases       []model.Case
	currentCase *model.Case
	evidence    []model.EvidenceItem
	transcript  []model.ChatMessage

	subscribers []chan struct{}
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Subscribe returns a channel that receives a signal after every mutation.
// The channel is buffered; a slow reader coalesces signals instead of
// blocking writers.
func (s *Store) Subscribe() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan struct{}, 1)
	s.subscribers = append(s.subscribers, ch)
	return ch
}

func (s *Store) notify() {
	for _, ch := range s.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// SetCases replaces the case list with the backend's authoritative list.
func (s *Store) SetCases(cases []model.Case) {
	s.mu.Lock()
	s.cases = append([]model.Case(nil), cases...)
	s.notify()
	s.mu.Unlock()
}

// Cases returns a copy of the cached case list.
func (s *Store) Cases() []model.Case {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Case(nil), s.cases...)
}

// SetCurrentCase replaces the open case detail.
func (s *Store) SetCurrentCase(c *model.Case) {
	s.mu.Lock()
	s.currentCase = c
	s.notify()
	s.mu.Unlock()
}

// CurrentCase returns the open case detail, or nil.
func (s *Store) CurrentCase() *model.Case {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentCase
}

// SetEvidence replaces the evidence list for the open case.
func (s *Store) SetEvidence(items []model.EvidenceItem) {
	s.mu.Lock()
	s.evidence = append([]model.EvidenceItem(nil), items...)
	s.notify()
	s.mu.Unlock()
}

// Evidence returns a copy of the cached evidence list.
func (s *Store) Evidence() []model.EvidenceItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.EvidenceItem(nil), s.evidence...)
}

// SetTranscript replaces the chat transcript.
func (s *Store) SetTranscript(messages []model.ChatMessage) {
	s.mu.Lock()
	s.transcript = append([]model.ChatMessage(nil), messages...)
	s.notify()
	s.mu.Unlock()
}

// Transcript returns a copy of the cached transcript.
func (s *Store) Transcript() []model.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.ChatMessage(nil), s.transcript...)
}
