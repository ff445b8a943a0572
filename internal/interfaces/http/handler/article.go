package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/hydroerp/backend/internal/application/catalog"
)

// ArticleHandler handles catalog article API endpoints
type ArticleHandler struct {
	BaseHandler
	articleService *catalogapp.ArticleService
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(articleService *catalogapp.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// RegisterRoutes registers article routes on the API group
func (h *ArticleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	articles := rg.Group("/articles")
	{
		articles.POST("", h.Create)
		articles.GET("", h.List)
		articles.GET("/:id", h.GetByID)
		articles.GET("/code/:code", h.GetByCode)
		articles.PUT("/:id", h.Update)
		articles.DELETE("/:id", h.Delete)
		articles.PUT("/:id/facets/:facet", h.SetFacetPrice)
		articles.DELETE("/:id/facets/:facet", h.RemoveFacetPrice)
		articles.POST("/:id/archive", h.Archive)
		articles.POST("/:id/activate", h.Activate)
	}
}

// Create adds a new article to the catalog
func (h *ArticleHandler) Create(c *gin.Context) {
	var req catalogapp.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	article, err := h.articleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, article)
}

// List returns articles with filtering and pagination
func (h *ArticleHandler) List(c *gin.Context) {
	var filter catalogapp.ArticleListFilter
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

	articles, total, err := h.articleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, articles, total, filter.Page, filter.PageSize)
}

// GetByID returns a single article
func (h *ArticleHandler) GetByID(c *gin.Context) {
	articleID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	article, err := h.articleService.GetByID(c.Request.Context(), articleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, article)
}

// GetByCode returns a single article by its code
func (h *ArticleHandler) GetByCode(c *gin.Context) {
	article, err := h.articleService.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, article)
}

// Update changes the mutable fields of an article
func (h *ArticleHandler) Update(c *gin.Context) {
	articleID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	var req catalogapp.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	article, err := h.articleService.Update(c.Request.Context(), articleID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, article)
}

// Delete removes an article from the catalog
func (h *ArticleHandler) Delete(c *gin.Context) {
	articleID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	if err := h.articleService.Delete(c.Request.Context(), articleID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// SetFacetPrice sets or replaces the price carried by one facet
func (h *ArticleHandler) SetFacetPrice(c *gin.Context) {
	articleID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	var req catalogapp.SetFacetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	article, err := h.articleService.SetFacetPrice(c.Request.Context(), articleID, c.Param("facet"), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, article)
}

// RemoveFacetPrice drops a facet price from an article
func (h *ArticleHandler) RemoveFacetPrice(c *gin.Context) {
	articleID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	article, err := h.articleService.RemoveFacetPrice(c.Request.Context(), articleID, c.Param("facet"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, article)
}

// Archive retires an article from the active catalog
func (h *ArticleHandler) Archive(c *gin.Context) {
	articleID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	article, err := h.articleService.Archive(c.Request.Context(), articleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, article)
}

// Activate returns an archived article to the active catalog
func (h *ArticleHandler) Activate(c *gin.Context) {
	articleID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid article ID format")
		return
	}

	article, err := h.articleService.Activate(c.Request.Context(), articleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, article)
}
