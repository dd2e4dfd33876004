// Package vrc defines the interface and data types used to talk to the
// VRChat moderation API: authentication probing, two-factor verification,
// group bans and account blocks.
package vrc

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"autoban/pkg/domain"
	"autoban/pkg/serrors"
)

// TwoFactorMethod names a two-factor verification endpoint offered by the API.
type TwoFactorMethod string

const (
	// TwoFactorTOTP is app-based two-factor verification.
	TwoFactorTOTP TwoFactorMethod = "totp"
	// TwoFactorEmail is email-based two-factor verification.
	TwoFactorEmail TwoFactorMethod = "emailotp"
)

// TwoFactorRequiredError is returned by CurrentUser when the credential login
// was accepted but the account demands a two-factor code before a session is
// issued. Methods lists the verification methods the API offered.
type TwoFactorRequiredError struct {
	Methods []TwoFactorMethod
}

func (e *TwoFactorRequiredError) Error() string {
	return "two-factor verification required"
}

// Is makes errors.Is(err, serrors.ErrTwoFactorRequired) match this error.
func (e *TwoFactorRequiredError) Is(target error) bool {
	return errors.Is(serrors.ErrTwoFactorRequired, target)
}

// WantsEmail reports whether the API asked for an email code rather than an
// authenticator app code. The current-user endpoint reports the method as
// "emailOtp" while the verify endpoint is named "emailotp", so the comparison
// is case-insensitive.
func (e *TwoFactorRequiredError) WantsEmail() bool {
	for _, m := range e.Methods {
		if strings.EqualFold(string(m), string(TwoFactorEmail)) {
			return true
		}
	}

	return false
}

// Client is the abstraction over the VRChat API surface this tool needs.
// Implementations own the session cookies so the authenticator can persist
// and restore them between invocations.
//
//go:generate mockgen -package mockvrc -source=interface.go -destination=mock/mockvrc.go *
type Client interface {
	// CurrentUser probes the current-user endpoint. With a session cookie
	// installed it validates the session; without one it performs a
	// credential login. It returns *TwoFactorRequiredError when the login
	// needs a two-factor code.
	CurrentUser(ctx context.Context) (*domain.Account, error)
	// VerifyTwoFactor submits a two-factor code against the given method's
	// verification endpoint.
	VerifyTwoFactor(ctx context.Context, method TwoFactorMethod, code string) error
	// BanGroupMember bans the user from the group. A conflict kind error
	// means the user was already banned.
	BanGroupMember(ctx context.Context, groupID string, userID string) error
	// BlockUser applies an account-level block to the user.
	BlockUser(ctx context.Context, userID string) error

	// Cookies returns the session cookies currently held by the client.
	Cookies() []*http.Cookie
	// SetCookies installs previously persisted session cookies.
	SetCookies(cookies []*http.Cookie)
}
