package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"lingobridge/internal/models"
	"lingobridge/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const errMissingParameters = "Missing required parameters"

// TranslationHandler handles translation-related requests.
type TranslationHandler struct {
	service *service.TranslationService
	logger  *zap.Logger
}

// NewTranslationHandler creates a new translation handler.
func NewTranslationHandler(service *service.TranslationService, logger *zap.Logger) *TranslationHandler {
	return &TranslationHandler{
		service: service,
		logger:  logger,
	}
}

// TranslateRequest is the body of POST /translate. Pointers distinguish an
// absent field from an empty one.
type TranslateRequest struct {
	Text           *string `json:"text" binding:"required"`
	TargetLanguage *string `json:"target_language" binding:"required"`
	SourceLanguage *string `json:"source_language"`
}

// Index handles GET /.
func (h *TranslationHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":     "Text Translator",
		"provider":  h.service.Provider(),
		"languages": models.LanguageList(),
	})
}

// Translate handles POST /translate.
func (h *TranslationHandler) Translate(c *gin.Context) {
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("Rejected translate request", zap.Error(err))
		h.respondError(c, http.StatusBadRequest, errMissingParameters)
		return
	}

	in := models.TranslationRequest{
		Text:           *req.Text,
		TargetLanguage: *req.TargetLanguage,
	}
	if req.SourceLanguage != nil {
		in.SourceLanguage = *req.SourceLanguage
	}

	c.JSON(http.StatusOK, h.service.Translate(c.Request.Context(), in))
}

// AvailableLanguages handles GET /available_languages.
func (h *TranslationHandler) AvailableLanguages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"languages": h.service.Languages(),
	})
}

// ListHistory handles GET /api/v1/translations.
func (h *TranslationHandler) ListHistory(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		h.respondError(c, http.StatusBadRequest, "invalid limit")
		return
	}

	records, err := h.service.History(c.Request.Context(), limit)
	if err != nil {
		if errors.Is(err, service.ErrHistoryDisabled) {
			h.respondError(c, http.StatusNotFound, err.Error())
			return
		}
		h.logger.Error("Failed to list translation history", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, "failed to load history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"translations": records,
	})
}

// respondError sends an error response.
func (h *TranslationHandler) respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}
