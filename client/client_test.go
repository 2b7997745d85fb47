package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-client-cache/client"
	"github.com/goliatone/go-client-cache/pkg/testsupport"
)

func newTestClient(t *testing.T, baseURL string, opts ...client.Option) *client.Client {
	t.Helper()

	c, err := client.New(client.Config{BaseURL: baseURL, UserAgent: "client-test"}, opts...)
	require.NoError(t, err)

	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := client.New(client.Config{})

	require.ErrorIs(t, err, client.ErrBaseURLRequired)
}

func TestExecute_SuccessEnvelope(t *testing.T) {
	var users []map[string]any
	testsupport.LoadFixtureJSON(t, testsupport.FixturePath("users.json"), &users)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		testsupport.WriteJSON(t, w, http.StatusOK, users)
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL)

	env, err := c.Execute(context.Background(), http.MethodGet, "/users", client.RequestOptions{})
	require.NoError(t, err)
	require.True(t, env.OK())

	var got []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Len(t, got, 2)
	require.Equal(t, "John", got[0]["first_name"])
}

func TestExecute_ErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		testsupport.WriteJSON(t, w, http.StatusNotFound, map[string]any{
			"code":   1404,
			"title":  "Not Found",
			"detail": "no such user",
		})
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL)

	env, err := c.Execute(context.Background(), http.MethodGet, "/users/{id}", client.RequestOptions{
		Params: client.Params{Path: map[string]string{"id": "9"}},
	})
	require.NoError(t, err, "API-level failures must not surface as transport errors")
	require.False(t, env.OK())
	require.Equal(t, http.StatusNotFound, env.Err.Status)
	require.Equal(t, 1404, env.Err.Code)
	require.Equal(t, "no such user", env.Err.Detail)
	require.True(t, client.IsNotFound(env.Err))
}

func TestExecute_ErrorEnvelopeNonJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL)

	env, err := c.Execute(context.Background(), http.MethodGet, "/health", client.RequestOptions{})
	require.NoError(t, err)
	require.False(t, env.OK())
	require.Equal(t, "Bad Gateway", env.Err.Title)
	require.Equal(t, "upstream exploded", env.Err.Detail)
	require.True(t, client.IsServerError(env.Err))
}

func TestExecute_PathParams(t *testing.T) {
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		testsupport.WriteJSON(t, w, http.StatusOK, map[string]int{"id": 1})
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL)

	_, err := c.Execute(context.Background(), http.MethodGet, "/teams/{team}/users/{id}", client.RequestOptions{
		Params: client.Params{Path: map[string]string{"team": "a/b", "id": "42"}},
	})
	require.NoError(t, err)
	require.Equal(t, "/teams/a%2Fb/users/42", gotPath)
}

func TestExecute_PathParamErrors(t *testing.T) {
	c := newTestClient(t, "http://localhost:1")

	tests := []struct {
		name    string
		urlPath string
		path    map[string]string
		wantErr error
	}{
		{
			name:    "missing placeholder value",
			urlPath: "/users/{id}",
			wantErr: client.ErrMissingPathParam,
		},
		{
			name:    "unterminated placeholder",
			urlPath: "/users/{id",
			path:    map[string]string{"id": "1"},
			wantErr: client.ErrMissingPathParam,
		},
		{
			name:    "unknown value",
			urlPath: "/users/{id}",
			path:    map[string]string{"id": "1", "extra": "x"},
			wantErr: client.ErrUnknownPathParam,
		},
		{
			name:    "values without placeholders",
			urlPath: "/users",
			path:    map[string]string{"id": "1"},
			wantErr: client.ErrUnknownPathParam,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Execute(context.Background(), http.MethodGet, tt.urlPath, client.RequestOptions{
				Params: client.Params{Path: tt.path},
			})

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_QueryEncoding(t *testing.T) {
	var gotQuery url.Values

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		testsupport.WriteJSON(t, w, http.StatusOK, nil)
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL)

	_, err := c.Execute(context.Background(), http.MethodGet, "/users", client.RequestOptions{
		Params: client.Params{Query: url.Values{"page": {"2"}, "tags": {"a", "b"}}},
	})
	require.NoError(t, err)
	require.Equal(t, "2", gotQuery.Get("page"))
	require.Equal(t, []string{"a", "b"}, gotQuery["tags"])
}

func TestExecute_Headers(t *testing.T) {
	var gotHeader http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Clone()
		testsupport.WriteJSON(t, w, http.StatusOK, nil)
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL)

	_, err := c.Execute(context.Background(), http.MethodGet, "/users", client.RequestOptions{
		Params: client.Params{Header: http.Header{"Authorization": {"Bearer tok"}}},
	})
	require.NoError(t, err)
	require.Equal(t, "application/json", gotHeader.Get("Accept"))
	require.Equal(t, "client-test", gotHeader.Get("User-Agent"))
	require.Equal(t, "Bearer tok", gotHeader.Get("Authorization"))
	require.NotEmpty(t, gotHeader.Get("X-Request-Id"))
}

func TestExecute_JSONBody(t *testing.T) {
	var (
		gotBody        map[string]any
		gotContentType string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		testsupport.WriteJSON(t, w, http.StatusCreated, map[string]int{"id": 1})
	}))
	t.Cleanup(server.Close)

	c := newTestClient(t, server.URL)

	env, err := c.Execute(context.Background(), http.MethodPost, "/users", client.RequestOptions{
		Body: map[string]string{"first_name": "John"},
	})
	require.NoError(t, err)
	require.True(t, env.OK(), "201 is a success status")
	require.Equal(t, "application/json", gotContentType)
	require.Equal(t, map[string]any{"first_name": "John"}, gotBody)
}

func TestExecute_UnencodableBody(t *testing.T) {
	c := newTestClient(t, "http://localhost:1")

	_, err := c.Execute(context.Background(), http.MethodPost, "/users", client.RequestOptions{
		Body: make(chan int),
	})

	require.ErrorIs(t, err, client.ErrEncodeRequestBody)
}

func TestExecute_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	c := newTestClient(t, server.URL)

	env, err := c.Execute(context.Background(), http.MethodGet, "/users", client.RequestOptions{})
	require.Error(t, err)
	require.Nil(t, env)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("CLIENT_BASE_URL", "https://api.example.com")
	t.Setenv("CLIENT_HTTP_TIMEOUT", "5s")
	t.Setenv("CLIENT_RETRY_MAX", "2")
	t.Setenv("CLIENT_DEBUG", "true")

	cfg, err := client.FromEnv()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, "https://api.example.com", cfg.BaseURL)
	require.Equal(t, "go-client-cache", cfg.UserAgent)
	require.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	require.Equal(t, 2, cfg.RetryMax)
	require.True(t, cfg.Debug)
}
