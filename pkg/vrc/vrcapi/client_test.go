package vrcapi_test

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"strings"
	"testing"

	"autoban/pkg/serrors"
	"autoban/pkg/vrc"
	"autoban/pkg/vrc/vrcapi"

	"github.com/stretchr/testify/require"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(fn rtFunc) *vrcapi.Client {
	return vrcapi.New(&http.Client{Transport: fn}, vrcapi.Options{
		Username:  "op@example.com",
		Password:  "p&ss word",
		UserAgent: "AutobanTest/1.0",
	})
}

func jsonResponse(status int, body string, cookies ...*http.Cookie) *http.Response {
	h := http.Header{}
	resp := &http.Response{
		StatusCode: status,
		Header:     h,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
	for _, c := range cookies {
		h.Add("Set-Cookie", c.String())
	}

	return resp
}

func TestClient_CurrentUser_basicAuthLogin(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "api.vrchat.cloud", r.URL.Host)
		require.Equal(t, "/api/1/auth/user", r.URL.Path)
		require.Equal(t, "AutobanTest/1.0", r.Header.Get("User-Agent"))

		// Credentials must be URL-encoded before base64.
		want := base64.StdEncoding.EncodeToString([]byte("op%40example.com:p%26ss+word"))
		require.Equal(t, "Basic "+want, r.Header.Get("Authorization"))

		return jsonResponse(http.StatusOK,
			`{"id":"usr_c001","displayName":"Operator"}`,
			&http.Cookie{Name: "auth", Value: "authcookie_abc", Path: "/", Domain: "api.vrchat.cloud"},
		), nil
	})

	account, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
	require.Equal(t, "usr_c001", account.ID)
	require.Equal(t, "Operator", account.DisplayName)

	// The auth cookie from Set-Cookie must be captured.
	cookies := c.Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "auth", cookies[0].Name)
	require.Equal(t, "authcookie_abc", cookies[0].Value)
}

func TestClient_CurrentUser_sessionCookieSkipsBasicAuth(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Empty(t, r.Header.Get("Authorization"), "stored session should not send credentials")

		cookie, err := r.Cookie("auth")
		require.NoError(t, err)
		require.Equal(t, "authcookie_abc", cookie.Value)

		return jsonResponse(http.StatusOK, `{"id":"usr_c001","displayName":"Operator"}`), nil
	})
	c.SetCookies([]*http.Cookie{{Name: "auth", Value: "authcookie_abc"}})

	_, err := c.CurrentUser(context.Background())
	require.NoError(t, err)
}

func TestClient_CurrentUser_twoFactorRequired(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"requiresTwoFactorAuth":["emailOtp"]}`), nil
	})

	account, err := c.CurrentUser(context.Background())
	require.Error(t, err)
	require.Nil(t, account)
	require.ErrorIs(t, err, serrors.ErrTwoFactorRequired)

	var tfErr *vrc.TwoFactorRequiredError
	require.ErrorAs(t, err, &tfErr)
	require.Equal(t, []vrc.TwoFactorMethod{"emailOtp"}, tfErr.Methods)
}

func TestClient_CurrentUser_unauthorized(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized,
			`{"error":{"message":"Invalid Username/Email or Password","status_code":401}}`), nil
	})

	_, err := c.CurrentUser(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrUnauthorized)
	require.Contains(t, err.Error(), "Invalid Username/Email or Password")
}

func TestClient_VerifyTwoFactor_success(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/1/auth/twofactorauth/totp/verify", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"code":"123456"}`, string(body))

		return jsonResponse(http.StatusOK, `{"verified":true}`,
			&http.Cookie{Name: "twoFactorAuth", Value: "2fa_xyz", Path: "/"}), nil
	})

	require.NoError(t, c.VerifyTwoFactor(context.Background(), vrc.TwoFactorTOTP, "123456"))

	cookies := c.Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "twoFactorAuth", cookies[0].Name)
}

func TestClient_VerifyTwoFactor_rejected(t *testing.T) {
	tests := []struct {
		name string
		resp *http.Response
	}{
		{name: "verified false", resp: jsonResponse(http.StatusOK, `{"verified":false}`)},
		{name: "bad request", resp: jsonResponse(http.StatusBadRequest, `{"error":{"message":"Invalid code","status_code":400}}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(func(r *http.Request) (*http.Response, error) {
				return tt.resp, nil
			})

			err := c.VerifyTwoFactor(context.Background(), vrc.TwoFactorEmail, "000000")
			require.Error(t, err)
			require.ErrorIs(t, err, serrors.ErrUnauthorized)
		})
	}
}

func TestClient_BanGroupMember_success(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/1/groups/grp_123/bans", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"userId":"usr_bad"}`, string(body))

		return jsonResponse(http.StatusOK, `{"groupId":"grp_123","userId":"usr_bad"}`), nil
	})

	require.NoError(t, c.BanGroupMember(context.Background(), "grp_123", "usr_bad"))
}

func TestClient_BanGroupMember_alreadyBannedIsConflict(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadRequest,
			`{"error":{"message":"\"User is already banned from this group.\"","status_code":400}}`), nil
	})

	err := c.BanGroupMember(context.Background(), "grp_123", "usr_bad")
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrConflict, "already banned should classify as conflict: %v", err)
}

func TestClient_BanGroupMember_hardFailures(t *testing.T) {
	tests := []struct {
		name     string
		resp     *http.Response
		wantKind serrors.Kind
	}{
		{
			name:     "forbidden",
			resp:     jsonResponse(http.StatusForbidden, `{"error":{"message":"You lack the permission","status_code":403}}`),
			wantKind: serrors.ErrForbidden,
		},
		{
			name:     "rate limited",
			resp:     jsonResponse(http.StatusTooManyRequests, `{"error":{"message":"Too many requests","status_code":429}}`),
			wantKind: serrors.ErrRateLimited,
		},
		{
			name:     "unauthorized",
			resp:     jsonResponse(http.StatusUnauthorized, `{"error":{"message":"Missing credentials","status_code":401}}`),
			wantKind: serrors.ErrUnauthorized,
		},
		{
			name:     "other bad request",
			resp:     jsonResponse(http.StatusBadRequest, `{"error":{"message":"Group not open","status_code":400}}`),
			wantKind: serrors.ErrBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(func(r *http.Request) (*http.Response, error) {
				return tt.resp, nil
			})

			err := c.BanGroupMember(context.Background(), "grp_123", "usr_bad")
			require.Error(t, err)
			require.ErrorIs(t, err, tt.wantKind)
			require.NotErrorIs(t, err, serrors.ErrConflict)
		})
	}
}

func TestClient_BanGroupMember_non2xxPlainBody(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, "upstream bad"), nil
	})

	err := c.BanGroupMember(context.Background(), "grp_123", "usr_bad")
	require.Error(t, err)
	require.Contains(t, err.Error(), "upstream bad")
}

func TestClient_BlockUser_success(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/1/auth/user/playermoderations", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.JSONEq(t, `{"moderated":"usr_bad","type":"block"}`, string(body))

		return jsonResponse(http.StatusOK, `{"type":"block","targetUserId":"usr_bad"}`), nil
	})

	require.NoError(t, c.BlockUser(context.Background(), "usr_bad"))
}

func TestClient_BlockUser_failureClassified(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusUnauthorized, `{"error":{"message":"Missing credentials","status_code":401}}`), nil
	})

	err := c.BlockUser(context.Background(), "usr_bad")
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrUnauthorized)
}

func TestClient_CookiesRoundTrip(t *testing.T) {
	c := newTestClient(nil)
	stored := []*http.Cookie{
		{Name: "auth", Value: "authcookie_abc", Domain: "api.vrchat.cloud", Path: "/"},
		{Name: "twoFactorAuth", Value: "2fa_xyz", Domain: "api.vrchat.cloud", Path: "/"},
	}
	c.SetCookies(stored)

	got := c.Cookies()
	require.Len(t, got, 2)
	require.Equal(t, "auth", got[0].Name)
	require.Equal(t, "authcookie_abc", got[0].Value)
	require.Equal(t, "twoFactorAuth", got[1].Name)
	require.Equal(t, "2fa_xyz", got[1].Value)
}
