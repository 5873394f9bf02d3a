package ai

import (
	"github.com/gin-gonic/gin"
	"github.com/pagesage/core/internal/pkg/response"
	"go.uber.org/zap"
)

// Handler exposes the standalone language-model tasks, the ones that work
// on request-supplied text rather than a stored token.
type Handler struct {
	svc    *Service
	logger *zap.Logger
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, logger: logger.Named("ai.handler")}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/correct-grammar/", h.correctGrammar)
	r.POST("/translate/", h.translate)
	r.POST("/chat_about_content/", h.chatAboutContent)
	r.POST("/dummy_data", h.dummyData)
}

func (h *Handler) correctGrammar(c *gin.Context) {
	var payload correctGrammarDTO
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "text is required")
		return
	}

	corrected, err := h.svc.CorrectGrammar(c.Request.Context(), payload.Text)
	if err != nil {
		h.logger.Error("grammar correction failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"corrected_text": corrected})
}

func (h *Handler) translate(c *gin.Context) {
	var payload translateDTO
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "text and targetLang are required")
		return
	}

	translated, err := h.svc.Translate(c.Request.Context(), payload.Text, payload.TargetLang)
	if err != nil {
		h.logger.Error("translation failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"translated_text": translated})
}

func (h *Handler) chatAboutContent(c *gin.Context) {
	var payload chatDTO
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "question and selectedContent are required")
		return
	}

	answer, err := h.svc.Chat(c.Request.Context(), payload.SelectedContent, payload.Question)
	if err != nil {
		h.logger.Error("chat completion failed", zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"answer": answer})
}

func (h *Handler) dummyData(c *gin.Context) {
	response.OK(c, gin.H{"message": "This is dummy data for testing purposes."})
}
