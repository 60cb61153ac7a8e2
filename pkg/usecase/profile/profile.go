// Package profile manages the per-user display profile: name and email
// updates, and the three mutually exclusive avatar modes (photo, picked
// emoji, AI-generated emoji).
package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/emolens/pkg/adapter"
	"github.com/m-mizutani/emolens/pkg/model"
	"github.com/m-mizutani/emolens/pkg/repository"
	"google.golang.org/genai"
)

const avatarInstruction = "Pick ONE emoji character for: %s. Return ONLY emoji."

// fallbackAvatar is used when the model returns an empty completion
const fallbackAvatar = "🤖"

// UseCase provides profile operations
type UseCase struct {
	repo   repository.Repository
	gemini adapter.Gemini
	auth   adapter.Auth
}

// Option is a functional option for UseCase
type Option func(*UseCase)

// WithAuth propagates display-name changes to the auth provider
func WithAuth(auth adapter.Auth) Option {
	return func(u *UseCase) {
		u.auth = auth
	}
}

// New creates a profile UseCase
func New(repo repository.Repository, gemini adapter.Gemini, opts ...Option) *UseCase {
	uc := &UseCase{
		repo:   repo,
		gemini: gemini,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Get retrieves the user's profile, falling back to a default one when the
// user has never saved anything.
func (u *UseCase) Get(ctx context.Context, uid string) (*model.UserProfile, error) {
	profile, err := u.repo.GetProfile(ctx, uid)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get profile", goerr.V("uid", uid))
	}
	if profile == nil {
		profile = &model.UserProfile{Name: "User"}
	}
	return profile, nil
}

// Update changes the display name and email. When an auth adapter is
// configured the display name is also pushed to the identity provider.
func (u *UseCase) Update(ctx context.Context, user *model.User, name, email string) (*model.UserProfile, error) {
	if strings.TrimSpace(name) == "" {
		return nil, goerr.New("name is required")
	}

	if u.auth != nil {
		if err := u.auth.UpdateDisplayName(ctx, user.IDToken, name); err != nil {
			return nil, goerr.Wrap(err, "failed to update display name")
		}
	}

	profile, err := u.Get(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	profile.Name = name
	profile.Email = email
	if err := u.repo.SaveProfile(ctx, user.ID, profile); err != nil {
		return nil, goerr.Wrap(err, "failed to save profile", goerr.V("uid", user.ID))
	}

	return profile, nil
}

// SetImage sets a photo avatar
func (u *UseCase) SetImage(ctx context.Context, uid, uri string) (*model.UserProfile, error) {
	return u.mutate(ctx, uid, func(p *model.UserProfile) {
		p.SetImage(uri)
	})
}

// SetEmoji sets a user-picked emoji avatar
func (u *UseCase) SetEmoji(ctx context.Context, uid, emoji string) (*model.UserProfile, error) {
	return u.mutate(ctx, uid, func(p *model.UserProfile) {
		p.SetEmoji(emoji)
	})
}

// GenerateAvatar asks the model for a single emoji matching the prompt and
// stores it as a generated avatar.
func (u *UseCase) GenerateAvatar(ctx context.Context, uid, prompt string) (*model.UserProfile, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(fmt.Sprintf(avatarInstruction, prompt), genai.RoleUser),
	}

	resp, err := u.gemini.GenerateContent(ctx, contents, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate avatar", goerr.V("prompt", prompt))
	}

	emoji := strings.TrimSpace(resp.Text())
	if emoji == "" {
		emoji = fallbackAvatar
	}

	return u.mutate(ctx, uid, func(p *model.UserProfile) {
		p.SetGeneratedEmoji(emoji)
	})
}

func (u *UseCase) mutate(ctx context.Context, uid string, apply func(*model.UserProfile)) (*model.UserProfile, error) {
	profile, err := u.Get(ctx, uid)
	if err != nil {
		return nil, err
	}

	apply(profile)
	if err := u.repo.SaveProfile(ctx, uid, profile); err != nil {
		return nil, goerr.Wrap(err, "failed to save profile", goerr.V("uid", uid))
	}

	return profile, nil
}
