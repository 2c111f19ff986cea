package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	client := NewClient(Config{Token: "test-token", Owner: "aminati", Repo: "storefront", Branch: "main"})
	client.baseURL = serverURL
	return client
}

func TestGet(t *testing.T) {
	ctx := context.Background()

	t.Run("Existing file is decoded with its SHA", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/repos/aminati/storefront/contents/products.json", r.URL.Path)
			assert.Equal(t, "main", r.URL.Query().Get("ref"))
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

			json.NewEncoder(w).Encode(contentResponse{
				Content: base64.StdEncoding.EncodeToString([]byte(`{"count":0}`)),
				SHA:     "abc123",
			})
		}))
		defer server.Close()

		content, sha, found, err := newTestClient(server.URL).Get(ctx, "products.json")
		require.NoError(t, err)

		assert.True(t, found)
		assert.Equal(t, "abc123", sha)
		assert.JSONEq(t, `{"count":0}`, string(content))
	})

	t.Run("Wrapped base64 content is decoded", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			encoded := base64.StdEncoding.EncodeToString([]byte("hello world"))
			json.NewEncoder(w).Encode(contentResponse{
				Content: encoded[:8] + "\n" + encoded[8:],
				SHA:     "abc123",
			})
		}))
		defer server.Close()

		content, _, _, err := newTestClient(server.URL).Get(ctx, "index.html")
		require.NoError(t, err)

		assert.Equal(t, "hello world", string(content))
	})

	t.Run("Missing file is not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, _, found, err := newTestClient(server.URL).Get(ctx, "products.json")
		require.NoError(t, err)

		assert.False(t, found)
	})

	t.Run("Server error is surfaced", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, _, _, err := newTestClient(server.URL).Get(ctx, "products.json")
		assert.Error(t, err)
	})
}

func TestPut(t *testing.T) {
	ctx := context.Background()

	t.Run("Update carries the revision SHA and branch", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)

			var body writeRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "update product feed", body.Message)
			assert.Equal(t, "main", body.Branch)
			assert.Equal(t, "oldsha", body.SHA)

			decoded, err := base64.StdEncoding.DecodeString(body.Content)
			require.NoError(t, err)
			assert.Equal(t, `{"count":1}`, string(decoded))

			w.Write([]byte(`{"content":{"sha":"newsha"}}`))
		}))
		defer server.Close()

		sha, err := newTestClient(server.URL).Put(ctx, "products.json", []byte(`{"count":1}`), "update product feed", "oldsha")
		require.NoError(t, err)

		assert.Equal(t, "newsha", sha)
	})

	t.Run("Create omits the SHA", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body writeRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Empty(t, body.SHA)

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"content":{"sha":"newsha"}}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Put(ctx, "index.html", []byte("<html>"), "publish catalog index", "")
		require.NoError(t, err)
	})

	t.Run("Conflict is surfaced", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Put(ctx, "products.json", []byte("{}"), "update product feed", "stale")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "409")
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)

		var body writeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "oldsha", body.SHA)
		assert.Empty(t, body.Content)

		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	err := newTestClient(server.URL).Delete(ctx, "products/1001.html", "remove product page 1001", "oldsha")
	require.NoError(t, err)
}
