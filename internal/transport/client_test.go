package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/profilectl/internal/csrf"
)

type fakeDoc struct {
	form, meta *string
}

func (d fakeDoc) CSRFFormField() *string { return d.form }
func (d fakeDoc) CSRFMeta() *string      { return d.meta }

func ptr(s string) *string { return &s }

type captured struct {
	method  string
	path    string
	body    []byte
	headers http.Header
	cookies []*http.Cookie
}

func newServer(t *testing.T, status int, response string) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		got.body, _ = io.ReadAll(r.Body)
		got.headers = r.Header.Clone()
		got.cookies = r.Cookies()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(ts.Close)
	return ts, got
}

func newClient(t *testing.T, baseURL string, logger zerolog.Logger) *Client {
	t.Helper()
	c, err := New(Options{
		BaseURL:     baseURL,
		Timeout:     time.Second,
		CookieName:  "sessionid",
		CookieValue: "sess-1",
		Logger:      logger,
	})
	require.NoError(t, err)
	return c
}

func TestDo_sends_json_body_and_document_token(t *testing.T) {
	ts, got := newServer(t, http.StatusOK, `{"status":"success","message":"Theme updated successfully","theme":"dark"}`)
	c := newClient(t, ts.URL, zerolog.Nop())
	c.SetDocument(fakeDoc{form: ptr("form-token"), meta: ptr("meta-token")})

	env, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/api/preferences/theme/",
		Body:   map[string]string{"theme": "dark"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/api/preferences/theme/", got.path)
	assert.JSONEq(t, `{"theme":"dark"}`, string(got.body))
	assert.Equal(t, "application/json", got.headers.Get("Content-Type"))
	assert.Equal(t, "form-token", got.headers.Get(csrf.HeaderName))

	require.Len(t, got.cookies, 1)
	assert.Equal(t, "sessionid", got.cookies[0].Name)

	assert.True(t, env.OK())
	assert.Equal(t, "Theme updated successfully", env.Message)
	theme, ok := env.String("theme")
	assert.True(t, ok)
	assert.Equal(t, "dark", theme)
}

func TestDo_without_body_omits_content_type(t *testing.T) {
	ts, got := newServer(t, http.StatusOK, `{"status":"success","message":"Sync started successfully"}`)
	c := newClient(t, ts.URL, zerolog.Nop())
	c.SetDocument(fakeDoc{meta: ptr("meta-token")})

	_, err := c.Do(context.Background(), Request{Path: "/api/sync/"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.method, "method defaults to POST")
	assert.Empty(t, got.body)
	assert.Empty(t, got.headers.Get("Content-Type"))
	assert.Equal(t, "meta-token", got.headers.Get(csrf.HeaderName))
}

func TestDo_falls_back_to_cookie_token(t *testing.T) {
	var got http.Header
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "cookie-token", Path: "/"})
			_, _ = io.WriteString(w, "<html></html>")
			return
		}
		got = r.Header.Clone()
		_, _ = io.WriteString(w, `{"status":"success"}`)
	}))
	t.Cleanup(ts.Close)

	c := newClient(t, ts.URL, zerolog.Nop())
	_, err := c.Get(context.Background(), "/profile/")
	require.NoError(t, err)

	_, err = c.Do(context.Background(), Request{Path: "/api/sync/"})
	require.NoError(t, err)
	assert.Equal(t, "cookie-token", got.Get(csrf.HeaderName))
}

func TestDo_missing_token_is_logged_and_request_proceeds(t *testing.T) {
	ts, got := newServer(t, http.StatusForbidden, `{"status":"error","message":"CSRF verification failed"}`)
	var logs bytes.Buffer
	c := newClient(t, ts.URL, zerolog.New(&logs))

	env, err := c.Do(context.Background(), Request{Path: "/api/sync/"})
	require.NoError(t, err)

	assert.Equal(t, "/api/sync/", got.path, "request still sent")
	assert.Empty(t, got.headers.Values(csrf.HeaderName))
	assert.Contains(t, logs.String(), "CSRF token not found")
	assert.False(t, env.OK())
	assert.Equal(t, "CSRF verification failed", env.Message)
}

func TestDo_malformed_body_is_transport_error(t *testing.T) {
	ts, _ := newServer(t, http.StatusInternalServerError, `<html>Server Error</html>`)
	c := newClient(t, ts.URL, zerolog.Nop())

	env, err := c.Do(context.Background(), Request{Path: "/api/sync/"})
	require.ErrorIs(t, err, ErrMalformedResponse)
	assert.Equal(t, http.StatusInternalServerError, env.HTTPStatus)
}

func TestDo_network_failure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := newClient(t, url, zerolog.Nop())
	_, err := c.Do(context.Background(), Request{Path: "/api/sync/"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMalformedResponse)
}

func TestGet_non_2xx(t *testing.T) {
	ts, _ := newServer(t, http.StatusFound, `{}`)
	c := newClient(t, ts.URL, zerolog.Nop())
	c.http.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

	_, err := c.Get(context.Background(), "/profile/")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 302")
}

func TestDecodeEnvelope(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantOK   bool
		wantMsg  string
		wantData map[string]any
	}{
		{
			name:     "nested data",
			status:   200,
			body:     `{"status":"success","message":"saved","data":{"next_sync":"2024-01-01T00:00:00Z"}}`,
			wantOK:   true,
			wantMsg:  "saved",
			wantData: map[string]any{"next_sync": "2024-01-01T00:00:00Z"},
		},
		{
			name:     "top level fields folded into data",
			status:   200,
			body:     `{"status":"success","message":"saved","next_sync":null,"auto_sync_enabled":false}`,
			wantOK:   true,
			wantMsg:  "saved",
			wantData: map[string]any{"next_sync": nil, "auto_sync_enabled": false},
		},
		{
			name:     "no status field with 200",
			status:   200,
			body:     `{"message":"ok"}`,
			wantOK:   true,
			wantMsg:  "ok",
			wantData: map[string]any{},
		},
		{
			name:     "error status with 200",
			status:   200,
			body:     `{"status":"error","message":"Sync already running"}`,
			wantOK:   false,
			wantMsg:  "Sync already running",
			wantData: map[string]any{},
		},
		{
			name:     "success status with 400",
			status:   400,
			body:     `{"status":"success"}`,
			wantOK:   false,
			wantData: map[string]any{},
		},
		{
			name:     "null data",
			status:   200,
			body:     `{"status":"success","data":null}`,
			wantOK:   true,
			wantData: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, err := decodeEnvelope(tt.status, []byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, env.OK())
			assert.Equal(t, tt.wantMsg, env.Message)
			assert.Equal(t, tt.wantData, env.Data)
		})
	}
}

func TestDecodeEnvelope_rejects_non_objects(t *testing.T) {
	for _, body := range []string{``, `null`, `[1,2]`, `"text"`} {
		_, err := decodeEnvelope(200, []byte(body))
		assert.ErrorIs(t, err, ErrMalformedResponse, body)
	}
}

func TestEnvelope_String(t *testing.T) {
	env := Envelope{Data: map[string]any{"a": "x", "b": nil, "c": 3.0, "d": ""}}

	v, ok := env.String("a")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	for _, key := range []string{"b", "c", "d", "missing"} {
		_, ok := env.String(key)
		assert.False(t, ok, key)
	}
}

func TestEnvelope_Bool(t *testing.T) {
	raw := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(`{"on":true,"off":false,"s":"true"}`), &raw))
	env := Envelope{Data: raw}

	v, ok := env.Bool("on")
	assert.True(t, ok)
	assert.True(t, v)
	v, ok = env.Bool("off")
	assert.True(t, ok)
	assert.False(t, v)
	_, ok = env.Bool("s")
	assert.False(t, ok)
}
