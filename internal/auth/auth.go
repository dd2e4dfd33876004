// Package auth implements the authentication flow against the VRChat API:
// reuse of a stored cookie session when possible, credential login with
// interactive two-factor verification otherwise, and persistence of the
// resulting session for the next invocation.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"autoban/pkg/domain"
	"autoban/pkg/logger"
	"autoban/pkg/serrors"
	"autoban/pkg/store"
	"autoban/pkg/vrc"

	"go.uber.org/zap"
)

// Session cookie names issued by the VRChat API.
const (
	authCookieName      = "auth"
	twoFactorCookieName = "twoFactorAuth"
)

// CodePrompter asks the operator for a two-factor code.
type CodePrompter interface {
	Code(ctx context.Context, prompt string) (string, error)
}

// Authenticator drives the login state machine. It owns no HTTP concerns;
// those live in the vrc.Client.
type Authenticator struct {
	client   vrc.Client
	sessions store.SessionStore
	prompter CodePrompter
}

// New creates an Authenticator using the provided API client, session store
// and two-factor code prompter.
func New(client vrc.Client, sessions store.SessionStore, prompter CodePrompter) *Authenticator {
	return &Authenticator{
		client:   client,
		sessions: sessions,
		prompter: prompter,
	}
}

// Authenticate establishes an authenticated session and returns the account
// it belongs to. A stored session is tried first; when it is missing, expired
// or rejected, a credential login (with two-factor verification when the
// account demands it) runs and the fresh session is persisted.
func (a *Authenticator) Authenticate(ctx context.Context) (*domain.Account, error) {
	cookies, err := a.sessions.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load stored session: %w", err)
	}

	if len(cookies) > 0 {
		a.client.SetCookies(cookies)

		account, err := a.client.CurrentUser(ctx)
		if err == nil {
			logger.Info(ctx, "authenticated using stored session",
				zap.String("displayName", account.DisplayName))

			return account, nil
		}
		if !errors.Is(err, serrors.ErrUnauthorized) && !errors.Is(err, serrors.ErrTwoFactorRequired) {
			return nil, fmt.Errorf("could not validate stored session: %w", err)
		}

		logger.Info(ctx, "stored session expired or invalid, reauthenticating")
		a.client.SetCookies(nil)
		if err := a.sessions.Clear(ctx); err != nil {
			logger.Warn(ctx, "could not clear stale session", zap.Error(err))
		}
	}

	account, err := a.client.CurrentUser(ctx)

	var tfErr *vrc.TwoFactorRequiredError
	if errors.As(err, &tfErr) {
		if err := a.verifyTwoFactor(ctx, tfErr); err != nil {
			return nil, err
		}
		account, err = a.client.CurrentUser(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("could not authenticate: %w", err)
	}

	if err := a.persistSession(ctx); err != nil {
		return nil, err
	}

	logger.Info(ctx, "logged in", zap.String("displayName", account.DisplayName))

	return account, nil
}

// verifyTwoFactor prompts the operator for a code matching the method the API
// asked for and submits it.
func (a *Authenticator) verifyTwoFactor(ctx context.Context, tfErr *vrc.TwoFactorRequiredError) error {
	method := vrc.TwoFactorTOTP
	prompt := "2FA Code: "
	if tfErr.WantsEmail() {
		method = vrc.TwoFactorEmail
		prompt = "Email 2FA Code: "
	}

	code, err := a.prompter.Code(ctx, prompt)
	if err != nil {
		return fmt.Errorf("could not read two-factor code: %w", err)
	}

	if err := a.client.VerifyTwoFactor(ctx, method, code); err != nil {
		return fmt.Errorf("could not verify two-factor code: %w", err)
	}

	return nil
}

// persistSession saves the session cookies the login produced. The auth
// cookie is mandatory; the twoFactorAuth cookie only exists for accounts
// with two-factor enabled.
func (a *Authenticator) persistSession(ctx context.Context) error {
	var session []*http.Cookie
	for _, cookie := range a.client.Cookies() {
		if cookie.Name == authCookieName || cookie.Name == twoFactorCookieName {
			session = append(session, cookie)
		}
	}

	hasAuth := false
	for _, cookie := range session {
		if cookie.Name == authCookieName {
			hasAuth = true
		}
	}
	if !hasAuth {
		return serrors.With(serrors.ErrInternal, "no auth cookie obtained after authentication")
	}

	if err := a.sessions.Save(ctx, session); err != nil {
		logger.Warn(ctx, "could not persist session, next run will log in again", zap.Error(err))
	}

	return nil
}
