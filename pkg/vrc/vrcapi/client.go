// Package vrcapi provides a vrc.Client implementation backed by the public
// VRChat REST API.
package vrcapi

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"autoban/pkg/domain"
	"autoban/pkg/serrors"
	"autoban/pkg/vrc"
)

// baseURL is the root of the VRChat REST API.
const baseURL = "https://api.vrchat.cloud/api/1"

// alreadyBannedFragment is the substring the API puts in the error message
// when a group ban targets a user who is banned already. The message is
// matched by substring because the envelope sometimes double-encodes it.
const alreadyBannedFragment = "already banned"

// Options configure a Client.
type Options struct {
	// Username and Password are the account credentials used for the basic
	// auth login when no session cookie is installed.
	Username string
	Password string
	// UserAgent is sent on every request. The API rejects anonymous agents.
	UserAgent string
}

// Client talks to the VRChat REST API and fulfills the vrc.Client interface.
// It keeps its own view of the session cookies (captured from Set-Cookie on
// every response) so that value, expiry, domain and path survive persistence.
// It is not safe for concurrent use; the moderation loops are sequential.
type Client struct {
	httpClient *http.Client
	options    Options

	// cookies holds the latest session cookies keyed by name.
	cookies map[string]*http.Cookie
}

// New constructs a Client that uses the provided http.Client and options to
// interact with the VRChat API.
func New(httpClient *http.Client, options Options) *Client {
	return &Client{
		httpClient: httpClient,
		options:    options,
		cookies:    make(map[string]*http.Cookie),
	}
}

// Cookies returns the session cookies currently held by the client, ordered
// by name for stable persistence.
func (c *Client) Cookies() []*http.Cookie {
	out := make([]*http.Cookie, 0, len(c.cookies))
	for _, cookie := range c.cookies {
		out = append(out, cookie)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

// SetCookies replaces the client's session cookies with previously persisted
// ones.
func (c *Client) SetCookies(cookies []*http.Cookie) {
	c.cookies = make(map[string]*http.Cookie, len(cookies))
	for _, cookie := range cookies {
		c.cookies[cookie.Name] = cookie
	}
}

// do performs one API request and returns the status code and the full
// response body. Session cookies are attached to the request and refreshed
// from the response. When basicAuth is set, the credentials are attached the
// way the VRChat API expects them: URL-encoded before base64.
func (c *Client) do(ctx context.Context, method string, path string, body any, basicAuth bool) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("could not marshal request: %w", err)
		}
		reader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("could not create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", c.options.UserAgent)
	if basicAuth {
		cred := url.QueryEscape(c.options.Username) + ":" + url.QueryEscape(c.options.Password)
		req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(cred)))
	}
	for _, cookie := range c.Cookies() {
		req.AddCookie(cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("could not send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Refresh the session cookies from Set-Cookie. The parsed cookies carry
	// expiry, domain and path, which the session store persists.
	for _, cookie := range resp.Cookies() {
		c.cookies[cookie.Name] = cookie
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("could not read response body: %w", err)
	}

	return resp.StatusCode, b, nil
}

// errorMessage extracts the human-readable message from the API's error
// envelope ({"error":{"message":...,"status_code":...}}), falling back to the
// raw body when the envelope does not parse.
func errorMessage(body []byte) string {
	var envelope struct {
		Error struct {
			Message    string `json:"message"`
			StatusCode int    `json:"status_code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error.Message == "" {
		return strings.TrimSpace(string(body))
	}

	return envelope.Error.Message
}

// classify maps a non-2xx response to a semantic error.
func classify(status int, msg string) error {
	switch status {
	case http.StatusUnauthorized:
		return serrors.With(serrors.ErrUnauthorized, "unauthorized: %s", msg)
	case http.StatusForbidden:
		return serrors.With(serrors.ErrForbidden, "forbidden: %s", msg)
	case http.StatusNotFound:
		return serrors.With(serrors.ErrNotFound, "not found: %s", msg)
	case http.StatusTooManyRequests:
		return serrors.With(serrors.ErrRateLimited, "rate limited: %s", msg)
	case http.StatusBadRequest:
		return serrors.With(serrors.ErrBadRequest, "bad request: %s", msg)
	default:
		return fmt.Errorf("request failed (%d): %s", status, msg)
	}
}

// CurrentUser probes GET /auth/user. With a stored auth cookie installed the
// probe validates the session; without one it performs a basic auth login.
// When the login is accepted but the account requires two-factor
// verification, a *vrc.TwoFactorRequiredError is returned listing the
// offered methods.
func (c *Client) CurrentUser(ctx context.Context) (*domain.Account, error) {
	// https://vrchatapi.github.io/docs/api/#get-/auth/user
	_, hasSession := c.cookies["auth"]
	status, b, err := c.do(ctx, http.MethodGet, "/auth/user", nil, !hasSession)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, classify(status, errorMessage(b))
	}

	var userResp struct {
		ID                    string   `json:"id"`
		DisplayName           string   `json:"displayName"`
		RequiresTwoFactorAuth []string `json:"requiresTwoFactorAuth"`
	}
	if err := json.Unmarshal(b, &userResp); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}

	// A 200 carrying requiresTwoFactorAuth is not a logged-in user yet.
	if len(userResp.RequiresTwoFactorAuth) > 0 {
		methods := make([]vrc.TwoFactorMethod, 0, len(userResp.RequiresTwoFactorAuth))
		for _, m := range userResp.RequiresTwoFactorAuth {
			methods = append(methods, vrc.TwoFactorMethod(m))
		}

		return nil, &vrc.TwoFactorRequiredError{Methods: methods}
	}

	return &domain.Account{ID: userResp.ID, DisplayName: userResp.DisplayName}, nil
}

// VerifyTwoFactor submits the code to POST /auth/twofactorauth/{method}/verify.
// A rejected code is reported as an unauthorized kind error.
func (c *Client) VerifyTwoFactor(ctx context.Context, method vrc.TwoFactorMethod, code string) error {
	// https://vrchatapi.github.io/docs/api/#post-/auth/twofactorauth/totp/verify
	type verifyReq struct {
		Code string `json:"code"`
	}
	status, b, err := c.do(ctx, http.MethodPost, "/auth/twofactorauth/"+string(method)+"/verify", verifyReq{Code: code}, false)
	if err != nil {
		return err
	}
	if status < 200 || status >= 300 {
		if status == http.StatusBadRequest {
			return serrors.With(serrors.ErrUnauthorized, "two-factor code rejected: %s", errorMessage(b))
		}

		return classify(status, errorMessage(b))
	}

	var verifyResp struct {
		Verified bool `json:"verified"`
	}
	if err := json.Unmarshal(b, &verifyResp); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}
	if !verifyResp.Verified {
		return serrors.With(serrors.ErrUnauthorized, "two-factor code rejected")
	}

	return nil
}

// BanGroupMember bans the user from the group via POST /groups/{groupID}/bans.
// When the API reports the user as banned already, a conflict kind error is
// returned so callers can treat the action as done.
func (c *Client) BanGroupMember(ctx context.Context, groupID string, userID string) error {
	// https://vrchatapi.github.io/docs/api/#post-/groups/-groupId-/bans
	type banReq struct {
		UserID string `json:"userId"`
	}
	status, b, err := c.do(ctx, http.MethodPost, "/groups/"+groupID+"/bans", banReq{UserID: userID}, false)
	if err != nil {
		return err
	}
	if status >= 200 && status < 300 {
		return nil
	}

	msg := errorMessage(b)
	if status == http.StatusBadRequest && strings.Contains(strings.ToLower(msg), alreadyBannedFragment) {
		return serrors.With(serrors.ErrConflict, "user %s is already banned: %s", userID, msg)
	}

	return classify(status, msg)
}

// BlockUser applies an account-level block via
// POST /auth/user/playermoderations. Re-blocking an already blocked user is
// accepted by the API without error.
func (c *Client) BlockUser(ctx context.Context, userID string) error {
	// https://vrchatapi.github.io/docs/api/#post-/auth/user/playermoderations
	type moderateReq struct {
		Moderated string `json:"moderated"`
		Type      string `json:"type"`
	}
	status, b, err := c.do(ctx, http.MethodPost, "/auth/user/playermoderations", moderateReq{Moderated: userID, Type: "block"}, false)
	if err != nil {
		return err
	}
	if status >= 200 && status < 300 {
		return nil
	}

	return classify(status, errorMessage(b))
}

// Ensure Client conforms to the vrc.Client interface at compile time.
var _ vrc.Client = (*Client)(nil)
