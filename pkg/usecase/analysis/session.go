// Package analysis orchestrates one sentiment analysis round: input →
// generative model call → parse → best-effort persist. The session exposes
// the observable state machine the UI layer renders.
package analysis

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/emolens/pkg/adapter"
	"github.com/m-mizutani/emolens/pkg/model"
	"github.com/m-mizutani/emolens/pkg/parser"
	"github.com/m-mizutani/emolens/pkg/usecase/history"
	"github.com/m-mizutani/emolens/pkg/utils/logging"
	"google.golang.org/genai"
)

type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

const sentimentPrefix = "SENTIMENT: "
const transcriptPrefix = "TRANSCRIPT: "

// fallbacks when the completion omits the expected markers
const (
	defaultSentiment  = "Neutral"
	defaultAudioInput = "Audio Input"
)

// Result is the UI-facing outcome of one analysis round. It is set on
// Succeeded regardless of whether persistence worked.
type Result struct {
	Input     string
	Sentiment string
	Profile   model.EmotionProfile
}

// Session runs analysis rounds for one signed-in user. Only one submission
// may be in flight at a time; a submit while Submitting is ignored.
type Session struct {
	mu         sync.Mutex
	state      State
	result     *Result
	errMessage string

	gemini      adapter.Gemini
	store       *history.Store
	storage     adapter.Storage
	corrections *Corrections
	uid         string
	now         func() time.Time
}

// NewInput contains the collaborators for a Session. Storage and Corrections
// are optional.
type NewInput struct {
	Gemini      adapter.Gemini
	Store       *history.Store
	Storage     adapter.Storage
	Corrections *Corrections
	UID         string
}

func New(input NewInput) *Session {
	return &Session{
		state:       StateIdle,
		gemini:      input.Gemini,
		store:       input.Store,
		storage:     input.Storage,
		corrections: input.Corrections,
		uid:         input.UID,
		now:         time.Now,
	}
}

// State returns the current session state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the last successful result, nil outside Succeeded
func (s *Session) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// ErrMessage returns the raw error message of the last failure, empty
// outside Failed
func (s *Session) ErrMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMessage
}

// Reset returns the session to Idle
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toIdle()
}

// Submit analyzes a text input. Blank input is a no-op that resets to Idle
// without any external call. Returns (nil, nil) when the submission was
// ignored because another one is in flight.
func (s *Session) Submit(ctx context.Context, text string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		s.resetUnlessInFlight()
		return nil, nil
	}

	if !s.begin() {
		return nil, nil
	}

	prompt := buildTextPrompt(s.corrections, text)
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := s.gemini.GenerateContent(ctx, contents, nil)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	result := s.conclude(resp.Text(), text)
	s.persist(ctx, result, nil)
	return result, nil
}

// SubmitAudio analyzes a recorded audio blob. The transcript reported by the
// model becomes the record's input text. The raw audio is archived to
// storage best-effort when a storage adapter is configured.
func (s *Session) SubmitAudio(ctx context.Context, data []byte, mimeType string) (*Result, error) {
	if len(data) == 0 {
		s.resetUnlessInFlight()
		return nil, nil
	}

	if !s.begin() {
		return nil, nil
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, mimeType),
			genai.NewPartFromText(buildAudioPrompt(s.corrections)),
		}, genai.RoleUser),
	}

	resp, err := s.gemini.GenerateContent(ctx, contents, nil)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	out := resp.Text()
	input, ok := parser.Label(out, transcriptPrefix)
	if !ok || input == "" {
		input = defaultAudioInput
	}

	result := s.conclude(out, input)
	s.persist(ctx, result, data)
	return result, nil
}

// begin claims the single in-flight submission slot
func (s *Session) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSubmitting {
		return false
	}

	s.state = StateSubmitting
	s.result = nil
	s.errMessage = ""
	return true
}

func (s *Session) conclude(completion, input string) *Result {
	sentiment, ok := parser.Label(completion, sentimentPrefix)
	if !ok {
		sentiment = defaultSentiment
	}

	result := &Result{
		Input:     input,
		Sentiment: sentiment,
		Profile:   parser.Profile(completion),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateSucceeded
	s.result = result
	return result
}

func (s *Session) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateFailed
	s.errMessage = err.Error()
}

// persist appends the record to history and archives the audio blob.
// Both writes are best-effort: the Succeeded state set by conclude is never
// reverted by a persistence failure.
func (s *Session) persist(ctx context.Context, result *Result, audio []byte) {
	record := model.NewAnalysisRecord(result.Input, result.Sentiment, result.Profile, s.now())

	if err := s.store.Append(ctx, s.uid, record); err != nil {
		logging.From(ctx).Warn("failed to append analysis record",
			"uid", s.uid, "record_id", record.ID, "error", err)
	}

	if len(audio) > 0 && s.storage != nil {
		s.archiveAudio(ctx, record.ID, audio)
	}
}

func (s *Session) archiveAudio(ctx context.Context, id model.RecordID, audio []byte) {
	w, err := s.storage.Put(ctx, adapter.AudioKey(s.uid, string(id)))
	if err != nil {
		logging.From(ctx).Warn("failed to open audio archive", "record_id", id, "error", err)
		return
	}

	if _, err := w.Write(audio); err != nil {
		logging.From(ctx).Warn("failed to archive audio", "record_id", id, "error", err)
	}
	if err := w.Close(); err != nil {
		logging.From(ctx).Warn("failed to close audio archive", "record_id", id, "error", err)
	}
}

// resetUnlessInFlight handles the blank-input no-op: back to Idle, but an
// in-flight submission keeps its slot.
func (s *Session) resetUnlessInFlight() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateSubmitting {
		s.toIdle()
	}
}

func (s *Session) toIdle() {
	s.state = StateIdle
	s.result = nil
	s.errMessage = ""
}
