package content

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/pagesage/core/internal/modules/ai"
	"github.com/pagesage/core/internal/pkg/htmltext"
	"github.com/pagesage/core/internal/pkg/response"
	"github.com/pagesage/core/internal/pkg/tokenizer"
	"go.uber.org/zap"
)

type uploadHTMLDTO struct {
	HTML string `json:"html" binding:"required"`
}

type askDTO struct {
	Token    string `json:"token"    binding:"required"`
	Question string `json:"question" binding:"required"`
}

// Handler exposes the stored-content routes: upload, summary and Q&A.
// Uploaded HTML is reduced to visible text and truncated to the token budget
// before it ever reaches storage; raw markup is never persisted.
type Handler struct {
	svc       *Service
	aiSvc     *ai.Service
	truncator *tokenizer.Truncator
	maxTokens int
	logger    *zap.Logger
}

func NewHandler(svc *Service, aiSvc *ai.Service, truncator *tokenizer.Truncator, maxTokens int, logger *zap.Logger) *Handler {
	return &Handler{
		svc:       svc,
		aiSvc:     aiSvc,
		truncator: truncator,
		maxTokens: maxTokens,
		logger:    logger.Named("content.handler"),
	}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/upload_html/", h.uploadHTML)
	r.GET("/get_summary/:token", h.getSummary)
	r.POST("/ask/", h.ask)
}

func (h *Handler) uploadHTML(c *gin.Context) {
	var payload uploadHTMLDTO
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "html is required")
		return
	}

	text := htmltext.Extract(payload.HTML)
	if text == "" {
		response.BadRequest(c, "No visible text found in HTML")
		return
	}
	text = h.truncator.Truncate(text, h.maxTokens)

	token, err := h.svc.Insert(c.Request.Context(), text)
	if err != nil {
		h.logger.Error("content insert failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	h.logger.Info("content stored", zap.String("token", token))
	response.OK(c, gin.H{"message": "HTML stored", "token": token})
}

func (h *Handler) getSummary(c *gin.Context) {
	token := c.Param("token")

	entry, err := h.svc.Get(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "Token not found")
			return
		}
		h.logger.Error("content lookup failed", zap.String("token", token), zap.Error(err))
		response.InternalError(c)
		return
	}

	summary, err := h.aiSvc.Summarize(c.Request.Context(), token, entry.Text)
	if err != nil {
		h.logger.Error("summarization failed", zap.String("token", token), zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"token": token, "summary": summary})
}

func (h *Handler) ask(c *gin.Context) {
	var payload askDTO
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.BadRequest(c, "token and question are required")
		return
	}

	entry, err := h.svc.Get(c.Request.Context(), payload.Token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFoundMsg(c, "Token not found")
			return
		}
		h.logger.Error("content lookup failed", zap.String("token", payload.Token), zap.Error(err))
		response.InternalError(c)
		return
	}

	answer, err := h.aiSvc.Answer(c.Request.Context(), entry.Text, payload.Question)
	if err != nil {
		h.logger.Error("question answering failed", zap.String("token", payload.Token), zap.Error(err))
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"answer": answer})
}
