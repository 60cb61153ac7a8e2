package adapter

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/emolens/pkg/model"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// Auth is the identity provider for user accounts. Credentials never touch
// the rest of the application; everything downstream keys on the user ID.
type Auth interface {
	SignUp(ctx context.Context, email, password string) (*model.User, error)
	SignIn(ctx context.Context, email, password string) (*model.User, error)
	CurrentUser(ctx context.Context, idToken string) (*model.User, error)
	UpdateDisplayName(ctx context.Context, idToken, displayName string) error
	SendPasswordReset(ctx context.Context, email string) error
}

type authClient struct {
	svc *identitytoolkit.Service
}

// NewAuth creates an Auth backed by the Identity Toolkit API
func NewAuth(ctx context.Context, apiKey string) (Auth, error) {
	svc, err := identitytoolkit.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create identitytoolkit service")
	}

	return &authClient{svc: svc}, nil
}

func (a *authClient) SignUp(ctx context.Context, email, password string) (*model.User, error) {
	resp, err := a.svc.Relyingparty.SignupNewUser(&identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:    email,
		Password: password,
	}).Context(ctx).Do()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to sign up", goerr.V("email", email))
	}

	return &model.User{
		ID:          resp.LocalId,
		Email:       resp.Email,
		DisplayName: resp.DisplayName,
		IDToken:     resp.IdToken,
	}, nil
}

func (a *authClient) SignIn(ctx context.Context, email, password string) (*model.User, error) {
	resp, err := a.svc.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to sign in", goerr.V("email", email))
	}

	return &model.User{
		ID:          resp.LocalId,
		Email:       resp.Email,
		DisplayName: resp.DisplayName,
		IDToken:     resp.IdToken,
	}, nil
}

func (a *authClient) CurrentUser(ctx context.Context, idToken string) (*model.User, error) {
	resp, err := a.svc.Relyingparty.GetAccountInfo(&identitytoolkit.IdentitytoolkitRelyingpartyGetAccountInfoRequest{
		IdToken: idToken,
	}).Context(ctx).Do()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get account info")
	}
	if len(resp.Users) == 0 {
		return nil, goerr.New("no account for token")
	}

	u := resp.Users[0]
	return &model.User{
		ID:          u.LocalId,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		IDToken:     idToken,
	}, nil
}

func (a *authClient) UpdateDisplayName(ctx context.Context, idToken, displayName string) error {
	_, err := a.svc.Relyingparty.SetAccountInfo(&identitytoolkit.IdentitytoolkitRelyingpartySetAccountInfoRequest{
		IdToken:     idToken,
		DisplayName: displayName,
	}).Context(ctx).Do()
	if err != nil {
		return goerr.Wrap(err, "failed to update display name")
	}
	return nil
}

func (a *authClient) SendPasswordReset(ctx context.Context, email string) error {
	_, err := a.svc.Relyingparty.GetOobConfirmationCode(&identitytoolkit.Relyingparty{
		RequestType: "PASSWORD_RESET",
		Email:       email,
	}).Context(ctx).Do()
	if err != nil {
		return goerr.Wrap(err, "failed to send password reset", goerr.V("email", email))
	}
	return nil
}
