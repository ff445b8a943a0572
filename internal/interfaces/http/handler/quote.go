package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	quoteapp "github.com/hydroerp/backend/internal/application/quote"
)

// QuoteHandler handles quote draft API endpoints
type QuoteHandler struct {
	BaseHandler
	draftService *quoteapp.DraftService
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(draftService *quoteapp.DraftService) *QuoteHandler {
	return &QuoteHandler{draftService: draftService}
}

// RegisterRoutes registers quote draft routes on the API group
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	drafts := rg.Group("/quote-drafts")
	{
		drafts.POST("", h.Create)
		drafts.GET("", h.List)
		drafts.GET("/:id", h.GetByID)
		drafts.GET("/number/:number", h.GetByNumber)
		drafts.PUT("/:id", h.Update)
		drafts.DELETE("/:id", h.Delete)

		drafts.POST("/:id/lines", h.AddLine)
		drafts.PUT("/:id/lines/:lineId", h.UpdateLine)
		drafts.DELETE("/:id/lines/:lineId", h.RemoveLine)
		drafts.POST("/:id/lines/:lineId/choose-article", h.ChooseArticle)
		drafts.POST("/:id/lines/:lineId/change-facet", h.ChangeFacet)
		drafts.POST("/:id/lines/:lineId/duplicate", h.DuplicateLine)

		drafts.GET("/:id/totals", h.Totals)
		drafts.GET("/:id/validate", h.Validate)
		drafts.POST("/:id/submit", h.Submit)
		drafts.POST("/:id/cancel", h.Cancel)
		drafts.GET("/:id/print", h.Print)
	}
}

// draftAndLineIDs parses both UUID path parameters of line routes
func (h *QuoteHandler) draftAndLineIDs(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	draftID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid draft ID format")
		return uuid.Nil, uuid.Nil, false
	}
	lineID, err := parseUUIDParam(c, "lineId")
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return uuid.Nil, uuid.Nil, false
	}
	return draftID, lineID, true
}

// Create opens a new quote draft
func (h *QuoteHandler) Create(c *gin.Context) {
	var req quoteapp.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	draft, err := h.draftService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, draft)
}

// List returns drafts with filtering and pagination
func (h *QuoteHandler) List(c *gin.Context) {
	var filter quoteapp.DraftListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	drafts, total, err := h.draftService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, drafts, total, filter.Page, filter.PageSize)
}

// GetByID returns a single draft with its lines and totals
func (h *QuoteHandler) GetByID(c *gin.Context) {
	draftID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid draft ID format")
		return
	}

	draft, err := h.draftService.GetByID(c.Request.Context(), draftID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, draft)
}

// GetByNumber returns a single draft by its draft number
func (h *QuoteHandler) GetByNumber(c *gin.Context) {
	draft, err := h.draftService.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, draft)
}

// Update changes the draft header fields
func (h *QuoteHandler) Update(c *gin.Context) {
	draftID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid draft ID format")
		return
	}

	var req quoteapp.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	draft, err := h.draftService.Update(c.Request.Context(), draftID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, draft)
}

// Delete removes a draft
func (h *QuoteHandler) Delete(c *gin.Context) {
	draftID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid draft ID format")
		return
	}

	if err := h.draftService.Delete(c.Request.Context(), draftID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// AddLine appends an empty line to the draft
func (h *QuoteHandler) AddLine(c *gin.Context) {
	draftID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid draft ID format")
		return
	}

	draft, err := h.draftService.AddLine(c.Request.Context(), draftID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, draft)
}

// UpdateLine changes the article, facet, quantity, price overrides or
// the label of a line
func (h *QuoteHandler) UpdateLine(c *gin.Context) {
	draftID, lineID, ok := h.draftAndLineIDs(c)
	if !ok {
		return
	}

	var req quoteapp.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	draft, err := h.draftService.UpdateLine(c.Request.Context(), draftID, lineID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, draft)
}

// RemoveLine deletes a line from the draft
func (h *QuoteHandler) RemoveLine(c *gin.Context) {
	draftID, lineID, ok := h.draftAndLineIDs(c)
	if !ok {
		return
	}

	draft, err := h.draftService.RemoveLine(c.Request.Context(), draftID, lineID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, draft)
}

// ChooseArticle binds an article to a line
func (h *QuoteHandler) ChooseArticle(c *gin.Context) {
	draftID, lineID, ok := h.draftAndLineIDs(c)
	if !ok {
		return
	}

	var req quoteapp.ChooseArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	draft, err := h.draftService.ChooseArticle(c.Request.Context(), draftID, lineID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, draft)
}

// ChangeFacet switches a line to an explicit price facet
func (h *QuoteHandler) ChangeFacet(c *gin.Context) {
	draftID, lineID, ok := h.draftAndLineIDs(c)
	if !ok {
		return
	}

	var req quoteapp.ChangeFacetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	draft, err := h.draftService.ChangeFacet(c.Request.Context(), draftID, lineID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, draft)
}

// DuplicateLine copies a line directly below its source
func (h *QuoteHandler) DuplicateLine(c *gin.Context) {
	draftID, lineID, ok := h.draftAndLineIDs(c)
	if !ok {
		return
	}

	draft, err := h.draftService.DuplicateLine(c.Request.Context(), draftID, lineID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, draft)
}

// Totals returns the recomputed document totals
func (h *QuoteHandler) Totals(c *gin.Context) {
	draftID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid draft ID format")
		return
	}

	totals, err := h.draftService.Totals(c.Request.Context(), draftID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, totals)
}

// Validate runs all submission checks and returns every violation found
func (h *QuoteHandler) Validate(c *gin.Context) {
	draftID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid draft ID format")
		return
	}

	violations, err := h.draftService.Validate(c.Request.Context(), draftID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, violations)
}

// Submit validates the draft and moves it to SUBMITTED
func (h *QuoteHandler) Submit(c *gin.Context) {
	draftID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid draft ID format")
		return
	}

	draft, err := h.draftService.Submit(c.Request.Context(), draftID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, draft)
}

// Cancel moves a draft to CANCELLED
func (h *QuoteHandler) Cancel(c *gin.Context) {
	draftID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid draft ID format")
		return
	}

	draft, err := h.draftService.Cancel(c.Request.Context(), draftID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, draft)
}

// Print renders the draft as the standard devis HTML document
func (h *QuoteHandler) Print(c *gin.Context) {
	draftID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid draft ID format")
		return
	}

	html, err := h.draftService.Print(c.Request.Context(), draftID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
