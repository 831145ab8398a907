package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Rrens/docchat/internal/document"
	"github.com/Rrens/docchat/internal/domain"
	"github.com/Rrens/docchat/internal/llm"
	"github.com/Rrens/docchat/internal/store"
)

// Completer produces an assistant reply for a conversation
type Completer interface {
	Complete(ctx context.Context, req llm.Request) (string, error)
}

// Extractor turns an uploaded document into plain text
type Extractor interface {
	Extract(ctx context.Context, name string, data []byte) (string, error)
}

// EventKind identifies an observable step of a send
type EventKind string

const (
	EventUserTurnAppended      EventKind = "user_turn_appended"
	EventAssistantTurnAppended EventKind = "assistant_turn_appended"
	EventErrorTurnAppended     EventKind = "error_turn_appended"
)

// Event is delivered to observers after a message is appended
type Event struct {
	Kind      EventKind
	SessionID string
	Message   domain.Message
}

// Observer receives events synchronously on the sending goroutine
type Observer func(Event)

// Composer is the unsent input: draft text and at most one pending attachment
type Composer struct {
	Draft      string             `json:"draft"`
	Attachment *domain.Attachment `json:"attachment,omitempty"`
}

// ChatService drives conversations: it appends turns to sessions, calls the
// completion client and keeps the composer state. Only one send may be in
// flight per process.
type ChatService struct {
	sessions  *store.SessionStore
	settings  *store.SettingsStore
	completer Completer
	extractor Extractor
	now       func() time.Time

	inFlight atomic.Bool

	mu        sync.Mutex
	composer  Composer
	observers []Observer
}

// ChatOption configures a ChatService
type ChatOption func(*ChatService)

// WithNow overrides the clock used for message timestamps
func WithNow(now func() time.Time) ChatOption {
	return func(s *ChatService) {
		s.now = now
	}
}

// NewChatService creates a new chat service
func NewChatService(
	sessions *store.SessionStore,
	settings *store.SettingsStore,
	completer Completer,
	extractor Extractor,
	opts ...ChatOption,
) *ChatService {
	s := &ChatService{
		sessions:  sessions,
		settings:  settings,
		completer: completer,
		extractor: extractor,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers an observer for send events
func (s *ChatService) Subscribe(o Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// IsLoading reports whether a send is in flight
func (s *ChatService) IsLoading() bool {
	return s.inFlight.Load()
}

// Send appends a user turn to the session, requests a completion and
// appends the reply. Completion failures become an error turn and are not
// returned as errors; the appended assistant or error turn is returned.
//
// ErrNothingToSend and ErrSendInFlight leave all state untouched. When ctx
// is canceled while waiting for the reply no turn is appended and the
// context error is returned.
func (s *ChatService) Send(ctx context.Context, sessionID, text string, attachment *domain.Attachment) (domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" && attachment == nil {
		return domain.Message{}, domain.ErrNothingToSend
	}

	if !s.inFlight.CompareAndSwap(false, true) {
		return domain.Message{}, domain.ErrSendInFlight
	}
	defer s.inFlight.Store(false)

	if _, err := s.sessions.Get(sessionID); err != nil {
		return domain.Message{}, err
	}

	s.resetComposer()

	userMsg := domain.NewMessage(domain.RoleUser, text, s.now())
	if attachment != nil {
		userMsg.Attachments = []domain.Attachment{*attachment}
	}

	var history []domain.Message
	_, err := s.sessions.Update(ctx, sessionID, func(sess domain.ChatSession) domain.ChatSession {
		history = append(sess.Messages[:len(sess.Messages):len(sess.Messages)], userMsg)
		if !sess.HasUserTurn() && sess.Title == domain.DefaultSessionTitle {
			sess.Title = domain.DeriveTitle(text, attachment != nil)
		}
		sess.Messages = append(sess.Messages, userMsg)
		sess.UpdatedAt = userMsg.CreatedAt
		return sess
	})
	if err := s.checkAppend(err); err != nil {
		return domain.Message{}, err
	}
	s.emit(Event{Kind: EventUserTurnAppended, SessionID: sessionID, Message: userMsg})

	req := llm.Request{
		History:  history,
		Text:     text,
		Settings: s.settings.Current(),
	}
	if attachment != nil {
		req.Document = attachment.Content
	}

	reply, err := s.completer.Complete(ctx, req)
	if ctxErr := ctx.Err(); ctxErr != nil {
		log.Info().Str("session_id", sessionID).Msg("Send canceled")
		return domain.Message{}, ctxErr
	}

	if err != nil {
		return s.appendError(ctx, sessionID, err)
	}
	return s.appendReply(ctx, sessionID, reply)
}

// SendComposer sends text together with the pending attachment
func (s *ChatService) SendComposer(ctx context.Context, sessionID, text string) (domain.Message, error) {
	return s.Send(ctx, sessionID, text, s.Composer().Attachment)
}

func (s *ChatService) appendReply(ctx context.Context, sessionID, reply string) (domain.Message, error) {
	msg := domain.NewMessage(domain.RoleAssistant, reply, s.now())

	_, err := s.sessions.Update(ctx, sessionID, func(sess domain.ChatSession) domain.ChatSession {
		sess.Messages = append(sess.Messages, msg)
		sess.UpdatedAt = msg.CreatedAt
		return sess
	})
	if err := s.checkAppend(err); err != nil {
		return domain.Message{}, err
	}

	log.Info().Str("session_id", sessionID).Int("reply_len", len(reply)).Msg("Assistant turn appended")
	s.emit(Event{Kind: EventAssistantTurnAppended, SessionID: sessionID, Message: msg})
	return msg, nil
}

// appendError records a failed send. Error turns leave UpdatedAt alone.
func (s *ChatService) appendError(ctx context.Context, sessionID string, cause error) (domain.Message, error) {
	text := cause.Error()
	if text == "" {
		text = domain.GenericSendFailure
	}

	msg := domain.NewMessage(domain.RoleAssistant, text, s.now())
	msg.IsError = true

	_, err := s.sessions.Update(ctx, sessionID, func(sess domain.ChatSession) domain.ChatSession {
		sess.Messages = append(sess.Messages, msg)
		return sess
	})
	if err := s.checkAppend(err); err != nil {
		return domain.Message{}, err
	}

	log.Warn().Err(cause).Str("session_id", sessionID).Msg("Send failed")
	s.emit(Event{Kind: EventErrorTurnAppended, SessionID: sessionID, Message: msg})
	return msg, nil
}

// checkAppend lets storage write failures through, since the in-memory
// session is already updated, and returns anything else.
func (s *ChatService) checkAppend(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrSessionNotFound) {
		return err
	}
	log.Warn().Err(err).Msg("Failed to persist sessions")
	return nil
}

func (s *ChatService) emit(e Event) {
	s.mu.Lock()
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, o := range observers {
		o(e)
	}
}

// Attach extracts a Word document and makes it the pending attachment.
// On failure the current pending attachment is kept.
func (s *ChatService) Attach(ctx context.Context, name string, data []byte) (domain.Attachment, error) {
	if err := document.CheckExtension(name); err != nil {
		return domain.Attachment{}, err
	}

	content, err := s.extractor.Extract(ctx, name, data)
	if err != nil {
		log.Warn().Err(err).Str("file", name).Msg("Failed to extract document")
		switch {
		case errors.Is(err, domain.ErrUnsupportedFormat), errors.Is(err, domain.ErrParseFailure):
			return domain.Attachment{}, err
		case ctx.Err() != nil:
			return domain.Attachment{}, ctx.Err()
		default:
			return domain.Attachment{}, fmt.Errorf("%w: %w", domain.ErrParseFailure, err)
		}
	}

	att := domain.NewFileAttachment(name, content)

	s.mu.Lock()
	s.composer.Attachment = &att
	s.mu.Unlock()

	log.Info().Str("file", name).Int("chars", len(content)).Msg("Document attached")
	return att, nil
}

// Composer returns the unsent input
func (s *ChatService) Composer() Composer {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.composer
	if c.Attachment != nil {
		att := *c.Attachment
		c.Attachment = &att
	}
	return c
}

func (s *ChatService) SetDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.composer.Draft = text
}

func (s *ChatService) ClearAttachment() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.composer.Attachment = nil
}

func (s *ChatService) resetComposer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.composer = Composer{}
}

// Sessions returns all sessions, most recently updated first
func (s *ChatService) Sessions() []domain.ChatSession {
	return s.sessions.Sorted()
}

func (s *ChatService) Session(id string) (domain.ChatSession, error) {
	return s.sessions.Get(id)
}

// ActiveSessionID returns the id of the selected session
func (s *ChatService) ActiveSessionID() string {
	return s.sessions.ActiveID()
}

// CreateSession starts a new session, selects it and clears the composer
func (s *ChatService) CreateSession(ctx context.Context) domain.ChatSession {
	sess, err := s.sessions.Create(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to persist sessions")
	}
	s.resetComposer()

	log.Info().Str("session_id", sess.ID).Msg("Session created")
	return sess
}

// DeleteSession removes a session. The collection is never left empty.
func (s *ChatService) DeleteSession(ctx context.Context, id string) error {
	if err := s.checkAppend(s.sessions.Delete(ctx, id)); err != nil {
		return err
	}
	log.Info().Str("session_id", id).Str("active_id", s.sessions.ActiveID()).Msg("Session deleted")
	return nil
}

func (s *ChatService) SelectSession(id string) error {
	return s.sessions.Select(id)
}

// Settings returns the current settings
func (s *ChatService) Settings() domain.AppSettings {
	return s.settings.Current()
}

// SaveSettings replaces and persists the settings
func (s *ChatService) SaveSettings(ctx context.Context, settings domain.AppSettings) error {
	if err := s.settings.Save(ctx, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	log.Info().
		Str("provider", string(settings.Provider)).
		Str("model", settings.ModelName).
		Bool("custom_base_url", settings.BaseURL != "").
		Msg("Settings saved")
	return nil
}

// SwitchProvider returns the current settings moved to another provider
// with defaults applied. Nothing is saved.
func (s *ChatService) SwitchProvider(to domain.Provider) domain.AppSettings {
	return domain.SwitchProvider(s.settings.Current(), to)
}
