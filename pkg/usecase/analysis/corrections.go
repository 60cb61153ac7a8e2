package analysis

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/emolens/pkg/model"
	"github.com/m-mizutani/emolens/pkg/repository"
)

// DefaultCorrectionLimit caps accumulated corrections so the prompt preamble
// cannot grow without bound. Oldest entries are dropped first.
const DefaultCorrectionLimit = 20

// Corrections accumulates user-supplied relabelings that are prepended to
// every subsequent analysis prompt.
type Corrections struct {
	mu    sync.Mutex
	limit int
	items []*model.Correction
}

// CorrectionsOption is a functional option for Corrections
type CorrectionsOption func(*Corrections)

// WithCorrectionLimit overrides the accumulation cap
func WithCorrectionLimit(limit int) CorrectionsOption {
	return func(c *Corrections) {
		c.limit = limit
	}
}

// NewCorrections creates an empty correction context
func NewCorrections(opts ...CorrectionsOption) *Corrections {
	c := &Corrections{limit: DefaultCorrectionLimit}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LoadCorrections restores a user's persisted corrections into a fresh
// correction context. The full oldest-first set is loaded and the cap keeps
// the newest entries, matching the drop-oldest policy of Add.
func LoadCorrections(ctx context.Context, repo repository.Repository, uid string, opts ...CorrectionsOption) (*Corrections, error) {
	c := NewCorrections(opts...)

	items, err := repo.ListCorrections(ctx, uid, 0)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load corrections", goerr.V("uid", uid))
	}

	c.items = items
	c.truncate()
	return c, nil
}

// Add appends a correction, dropping the oldest entry beyond the cap
func (c *Corrections) Add(originalText, correctLabel string, now time.Time) *model.Correction {
	correction := &model.Correction{
		OriginalText: originalText,
		CorrectLabel: correctLabel,
		CreatedAt:    now,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, correction)
	c.truncate()

	return correction
}

// Items returns a copy of the accumulated corrections, oldest first
func (c *Corrections) Items() []*model.Correction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*model.Correction{}, c.items...)
}

// PromptContext renders the corrections as a prompt preamble. Empty when no
// corrections have been taught.
func (c *Corrections) PromptContext() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("For context, the user has corrected past analyses:\n")
	for _, item := range c.items {
		sb.WriteString("- \"")
		sb.WriteString(item.OriginalText)
		sb.WriteString("\" should be labeled ")
		sb.WriteString(item.CorrectLabel)
		sb.WriteString(".\n")
	}

	return sb.String()
}

func (c *Corrections) truncate() {
	if c.limit > 0 && len(c.items) > c.limit {
		c.items = c.items[len(c.items)-c.limit:]
	}
}
