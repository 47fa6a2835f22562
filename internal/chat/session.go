// Package chat manages a case's conversation: optimistic local transcript
// state, source-grounded backend answers, and rollback on failure.
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plaide-ai/intake/internal/api"
	"github.com/plaide-ai/intake/internal/model"
	"github.com/plaide-ai/intake/internal/store"
	"github.com/plaide-ai/intake/pkg/logger"
	"github.com/plaide-ai/intake/pkg/metrics"
)

// ErrEmptyMessage is returned by Send for empty or whitespace-only text.
// No network call is made in that path.
var ErrEmptyMessage = api.NewValidationError("message must not be empty")

// EntryState is the lifecycle of one transcript entry. A user entry starts
// pending and is either confirmed by the backend answer or removed on failure.
type EntryState string

const (
	EntryPending   EntryState = "pending"
	EntryConfirmed EntryState = "confirmed"
)

// Entry is one transcript entry with its confirmation state.
type Entry struct {
	Message model.ChatMessage
	State   EntryState
}

// chatService is the slice of the chat client the session needs.
type chatService interface {
	Send(ctx context.Context, caseID, message string) (*model.ChatResponse, error)
	History(ctx context.Context, caseID string) ([]model.ChatMessage, error)
	Clear(ctx context.Context, caseID string) error
}

type outcome struct {
	entryID string
	resp    *model.ChatResponse
	err     error
}

// Session manages the transcript for one case. Concurrent Send calls may
// overlap on the wire, but their transcript mutations are applied in the order
// the calls were issued: out-of-order responses wait in a buffer until their
// turn.
type Session struct {
	caseID string
	chat   chatService
	store  *store.Store
	logger *logger.Logger

	mu       sync.Mutex
	entries  []Entry
	nextSeq  uint64
	applySeq uint64
	buffered map[uint64]outcome
}

// NewSession creates a chat session for a case.
func NewSession(caseID string, chat chatService, st *store.Store, log *logger.Logger) *Session {
	return &Session{
		caseID:   caseID,
		chat:     chat,
		store:    st,
		logger:   log.WithCase(caseID),
		buffered: make(map[uint64]outcome),
	}
}

// Transcript returns a copy of the current entries, pending ones included.
func (s *Session) Transcript() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}

// Send asks a question about the case. The user message is appended to the
// transcript immediately as pending; on success it is confirmed and the
// assistant answer appended, on failure it is removed so the transcript never
// keeps a question the backend never saw.
func (s *Session) Send(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	userMsg := model.ChatMessage{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Role:      model.RoleUser,
		Content:   text,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	seq := s.nextSeq
	s.nextSeq++
	s.entries = append(s.entries, Entry{Message: userMsg, State: EntryPending})
	s.publishLocked()
	s.mu.Unlock()

	resp, err := s.chat.Send(ctx, s.caseID, text)

	s.mu.Lock()
	s.buffered[seq] = outcome{entryID: userMsg.ID, resp: resp, err: err}
	s.drainLocked()
	s.mu.Unlock()

	if err != nil {
		s.logger.Warn("chat send failed, question rolled back", zap.Error(err))
	}
	return err
}

// drainLocked applies buffered outcomes in issue order. Caller holds s.mu.
func (s *Session) drainLocked() {
	for {
		o, ok := s.buffered[s.applySeq]
		if !ok {
			return
		}
		delete(s.buffered, s.applySeq)
		s.applySeq++

		idx := s.indexOfLocked(o.entryID)
		if idx < 0 {
			// History replaced the transcript while this send was in
			// flight; nothing left to confirm or roll back.
			continue
		}

		if o.err != nil {
			s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
			s.publishLocked()
			continue
		}

		s.entries[idx].State = EntryConfirmed
		metrics.ChatMessagesTotal.WithLabelValues(string(model.RoleUser)).Inc()

		assistant := model.ChatMessage{
			ID:        uuid.Must(uuid.NewV7()).String(),
			Role:      model.RoleAssistant,
			Content:   o.resp.Response,
			Sources:   o.resp.Sources,
			CreatedAt: time.Now(),
		}
		// The answer sits directly after its question, keeping each
		// question/answer pair adjacent even when later questions were
		// already appended.
		s.entries = append(s.entries, Entry{})
		copy(s.entries[idx+2:], s.entries[idx+1:])
		s.entries[idx+1] = Entry{Message: assistant, State: EntryConfirmed}
		metrics.ChatMessagesTotal.WithLabelValues(string(model.RoleAssistant)).Inc()
		s.publishLocked()
	}
}

func (s *Session) indexOfLocked(entryID string) int {
	for i, e := range s.entries {
		if e.Message.ID == entryID {
			return i
		}
	}
	return -1
}

// publishLocked mirrors the transcript into the store. Caller holds s.mu.
func (s *Session) publishLocked() {
	messages := make([]model.ChatMessage, len(s.entries))
	for i, e := range s.entries {
		messages[i] = e.Message
	}
	s.store.SetTranscript(messages)
}

// History replaces the local transcript with the backend's authoritative list.
// No merging: the server list wins.
func (s *Session) History(ctx context.Context) ([]model.ChatMessage, error) {
	messages, err := s.chat.History(ctx, s.caseID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.entries = make([]Entry, len(messages))
	for i, m := range messages {
		s.entries[i] = Entry{Message: m, State: EntryConfirmed}
	}
	s.publishLocked()
	s.mu.Unlock()

	return messages, nil
}

// Clear deletes the backend transcript and empties the local one.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.chat.Clear(ctx, s.caseID); err != nil {
		return err
	}

	s.mu.Lock()
	s.entries = nil
	s.publishLocked()
	s.mu.Unlock()
	return nil
}
