package aidetect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainsBlockedPhrase(t *testing.T) {
	assert.True(t, ContainsBlockedPhrase("As an AI, I cannot want things"))
	assert.True(t, ContainsBlockedPhrase("i do not possess desires"))
	assert.True(t, ContainsBlockedPhrase("I am a LANGUAGE MODEL after all"))
	assert.False(t, ContainsBlockedPhrase("I wish for a new bicycle"))
	assert.False(t, ContainsBlockedPhrase(""))
}

func TestDetect_FlagsAIText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer key123", r.Header.Get("Authorization"))
		w.Write([]byte(`{"ai": true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key123")
	assert.True(t, c.Detect(context.Background(), "suspicious text"))
}

func TestDetect_CleanText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ai": false}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	assert.False(t, c.Detect(context.Background(), "ordinary text"))
}

func TestDetect_FailsOpen(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "")
		assert.False(t, c.Detect(context.Background(), "text"))
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		c := NewClient(srv.URL, "")
		assert.False(t, c.Detect(context.Background(), "text"))
	})

	t.Run("malformed response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, "")
		assert.False(t, c.Detect(context.Background(), "text"))
	})

	t.Run("disabled client", func(t *testing.T) {
		c := NewClient("", "")
		require.NotNil(t, c)
		assert.False(t, c.Detect(context.Background(), "text"))
	})
}
