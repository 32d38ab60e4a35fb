package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"lingobridge/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newGoogleForTest(t *testing.T, handler http.HandlerFunc) *GoogleClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := NewGoogleClient(context.Background(), config.GoogleConfig{
		APIKey:   "test-key",
		Endpoint: server.URL + "/language/translate/",
	}, 5*time.Second, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestGoogleClient_Translate_AutoDetect(t *testing.T) {
	c := newGoogleForTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "Hello", r.Form.Get("q"))
		assert.Equal(t, "es", r.Form.Get("target"))
		assert.Empty(t, r.Form.Get("source"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"translations":[{"translatedText":"Hola","detectedSourceLanguage":"en"}]}}`))
	})

	out, err := c.Translate(context.Background(), Request{Text: "Hello", SourceLang: "auto", TargetLang: "es"})
	require.NoError(t, err)
	assert.Equal(t, "Hola", out.Text)
	assert.Equal(t, "en", out.DetectedSourceLang)
	assert.Equal(t, config.ProviderGoogle, c.Name())
}

func TestGoogleClient_Translate_ExplicitSource(t *testing.T) {
	c := newGoogleForTest(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "fr", r.Form.Get("source"))
		assert.Equal(t, "zh-TW", r.Form.Get("target"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"translations":[{"translatedText":"你好"}]}}`))
	})

	out, err := c.Translate(context.Background(), Request{Text: "Bonjour", SourceLang: "fr", TargetLang: "zh-TW"})
	require.NoError(t, err)
	assert.Equal(t, "你好", out.Text)
	assert.Empty(t, out.DetectedSourceLang)
}

func TestGoogleClient_Translate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
		isShape bool
	}{
		{
			name:    "forbidden",
			status:  http.StatusForbidden,
			body:    `{"error":{"code":403,"message":"The request is missing a valid API key."}}`,
			wantErr: "Google translation failed",
		},
		{
			name:    "no translations",
			status:  http.StatusOK,
			body:    `{"data":{"translations":[]}}`,
			isShape: true,
		},
		{
			name:    "no data",
			status:  http.StatusOK,
			body:    `{}`,
			isShape: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newGoogleForTest(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.Translate(context.Background(), Request{Text: "Hello", TargetLang: "es"})
			require.Error(t, err)
			if tt.isShape {
				assert.ErrorIs(t, err, ErrUnexpectedResponse)
				return
			}
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGoogleClient_Translate_InvalidTarget(t *testing.T) {
	c := newGoogleForTest(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider must not be called for an unparsable target")
	})

	_, err := c.Translate(context.Background(), Request{Text: "Hello", TargetLang: "not a language"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid target language")
}
