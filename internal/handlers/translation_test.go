package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lingobridge/internal/models"
	"lingobridge/internal/service"
	"lingobridge/internal/translate"
	mock_translate "lingobridge/internal/translate/mock"
	"lingobridge/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubHistory struct {
	records []models.HistoryRecord
	err     error
	limit   int
}

func (h *stubHistory) Record(ctx context.Context, rec models.HistoryRecord) error {
	h.records = append(h.records, rec)
	return nil
}

func (h *stubHistory) Recent(ctx context.Context, limit int) ([]models.HistoryRecord, error) {
	h.limit = limit
	return h.records, h.err
}

func newEngine(t *testing.T, setup func(*mock_translate.MockTranslator), opts ...service.Option) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	tr := mock_translate.NewMockTranslator(ctrl)
	tr.EXPECT().Name().Return("google").AnyTimes()
	if setup != nil {
		setup(tr)
	}

	svc := service.NewTranslationService(tr, zap.NewNop(), opts...)
	h := NewTranslationHandler(svc, zap.NewNop())

	r := gin.New()
	r.SetHTMLTemplate(web.Templates())
	r.GET("/", h.Index)
	r.POST("/translate", h.Translate)
	r.GET("/available_languages", h.AvailableLanguages)
	r.GET("/api/v1/translations", h.ListHistory)
	return r
}

func doRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestTranslate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "malformed json", body: `{"text": "Hello",`},
		{name: "json null", body: `null`},
		{name: "json array", body: `["Hello", "es"]`},
		{name: "missing text", body: `{"target_language": "es"}`},
		{name: "missing target", body: `{"text": "Hello"}`},
		{name: "explicit null text", body: `{"text": null, "target_language": "es"}`},
		{name: "wrong type", body: `{"text": 42, "target_language": "es"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// no Translate expectation: the provider must not be called
			r := newEngine(t, nil)

			w := doRequest(r, http.MethodPost, "/translate", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			body := decodeBody(t, w)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "Missing required parameters", body["error"])
		})
	}
}

func TestTranslate_Success(t *testing.T) {
	r := newEngine(t, func(m *mock_translate.MockTranslator) {
		m.EXPECT().
			Translate(gomock.Any(), translate.Request{Text: "Hello", SourceLang: "auto", TargetLang: "es"}).
			Return(&translate.Translation{Text: "Hola"}, nil)
	})

	w := doRequest(r, http.MethodPost, "/translate", `{"text": "Hello", "target_language": "es"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true, "translated_text": "Hola"}`, w.Body.String())
}

func TestTranslate_SuccessWithDetection(t *testing.T) {
	r := newEngine(t, func(m *mock_translate.MockTranslator) {
		m.EXPECT().
			Translate(gomock.Any(), translate.Request{Text: "Hallo", SourceLang: "de", TargetLang: "en"}).
			Return(&translate.Translation{Text: "Hello", DetectedSourceLang: "de"}, nil)
	})

	w := doRequest(r, http.MethodPost, "/translate", `{"text": "Hallo", "target_language": "en", "source_language": "de"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true, "translated_text": "Hello", "detected_source_language": "de"}`, w.Body.String())
}

func TestTranslate_EmptyTextIsForwarded(t *testing.T) {
	r := newEngine(t, func(m *mock_translate.MockTranslator) {
		m.EXPECT().
			Translate(gomock.Any(), translate.Request{Text: "", SourceLang: "auto", TargetLang: "es"}).
			Return(&translate.Translation{Text: ""}, nil)
	})

	w := doRequest(r, http.MethodPost, "/translate", `{"text": "", "target_language": "es", "source_language": null}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true, "translated_text": ""}`, w.Body.String())
}

func TestTranslate_ProviderErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr string
	}{
		{
			name:    "non-2xx",
			err:     errors.New("Gemini API returned status 500: internal"),
			wantErr: "Gemini API returned status 500: internal",
		},
		{
			name:    "transport",
			err:     errors.New("failed to call Gemini API: dial tcp 10.0.0.1:443: i/o timeout"),
			wantErr: "failed to call Gemini API: dial tcp 10.0.0.1:443: i/o timeout",
		},
		{
			name:    "unexpected shape",
			err:     translate.ErrUnexpectedResponse,
			wantErr: "Unexpected API response format",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(t, func(m *mock_translate.MockTranslator) {
				m.EXPECT().Translate(gomock.Any(), gomock.Any()).Return(nil, tt.err)
			})

			w := doRequest(r, http.MethodPost, "/translate", `{"text": "Hello", "target_language": "es"}`)
			require.Equal(t, http.StatusOK, w.Code)

			body := decodeBody(t, w)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.wantErr, body["error"])
			assert.NotContains(t, body, "translated_text")
		})
	}
}

func TestTranslate_EachRequestCallsProvider(t *testing.T) {
	r := newEngine(t, func(m *mock_translate.MockTranslator) {
		m.EXPECT().Translate(gomock.Any(), gomock.Any()).
			Return(&translate.Translation{Text: "Hola"}, nil).
			Times(2)
	})

	for i := 0; i < 2; i++ {
		w := doRequest(r, http.MethodPost, "/translate", `{"text": "Hello", "target_language": "es"}`)
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestAvailableLanguages(t *testing.T) {
	r := newEngine(t, nil)

	var first string
	for _, path := range []string{"/available_languages", "/available_languages?lang=fr&x=1"} {
		w := doRequest(r, http.MethodGet, path, "")
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Success   bool              `json:"success"`
			Languages map[string]string `json:"languages"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Len(t, body.Languages, 14)
		assert.Equal(t, "Turkish", body.Languages["tr"])
		assert.Equal(t, "Chinese (Simplified)", body.Languages["zh"])

		if first == "" {
			first = w.Body.String()
		}
		assert.Equal(t, first, w.Body.String())
	}
}

func TestIndex(t *testing.T) {
	r := newEngine(t, nil)

	w := doRequest(r, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Text Translator")
	assert.Contains(t, w.Body.String(), `<option value="zh-TW">Chinese (Traditional)</option>`)
	assert.Contains(t, w.Body.String(), "provider: google")
}

func TestListHistory(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		r := newEngine(t, nil)

		w := doRequest(r, http.MethodGet, "/api/v1/translations", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "history is not enabled", body["error"])
	})

	t.Run("invalid limit", func(t *testing.T) {
		r := newEngine(t, nil, service.WithHistory(&stubHistory{}))

		w := doRequest(r, http.MethodGet, "/api/v1/translations?limit=abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		r := newEngine(t, nil, service.WithHistory(&stubHistory{err: errors.New("db down")}))

		w := doRequest(r, http.MethodGet, "/api/v1/translations", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("records", func(t *testing.T) {
		text := "Hola"
		hist := &stubHistory{records: []models.HistoryRecord{{
			Provider:       "google",
			SourceLanguage: "auto",
			TargetLanguage: "es",
			Text:           "Hello",
			TranslatedText: &text,
			Success:        true,
		}}}
		r := newEngine(t, nil, service.WithHistory(hist))

		w := doRequest(r, http.MethodGet, "/api/v1/translations?limit=5", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 5, hist.limit)

		var body struct {
			Success      bool                   `json:"success"`
			Translations []models.HistoryRecord `json:"translations"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Success)
		require.Len(t, body.Translations, 1)
		assert.Equal(t, "Hola", *body.Translations[0].TranslatedText)
	})
}
