package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/hydroerp/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateArticleRequest represents a request to create a new article
type CreateArticleRequest struct {
	Code   string `json:"code" binding:"required,min=1,max=50"`
	Name   string `json:"name" binding:"required,min=1,max=200"`
	Unit   string `json:"unit" binding:"required,min=1,max=20"`
	Family string `json:"family" binding:"max=100"`
}

// UpdateArticleRequest represents a request to update an article
type UpdateArticleRequest struct {
	Name   *string `json:"name" binding:"omitempty,min=1,max=200"`
	Unit   *string `json:"unit" binding:"omitempty,min=1,max=20"`
	Family *string `json:"family" binding:"omitempty,max=100"`
}

// SetFacetPriceRequest represents a request to define one price facet
type SetFacetPriceRequest struct {
	UnitPrice      decimal.Decimal `json:"unit_price" binding:"required"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
}

// FacetPriceResponse represents one price facet in API responses
type FacetPriceResponse struct {
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
}

// ArticleResponse represents an article in API responses
type ArticleResponse struct {
	ID        uuid.UUID                     `json:"id"`
	Code      string                        `json:"code"`
	Name      string                        `json:"name"`
	Unit      string                        `json:"unit"`
	Family    string                        `json:"family"`
	Status    string                        `json:"status"`
	Facets    map[string]FacetPriceResponse `json:"facets"`
	CreatedAt time.Time                     `json:"created_at"`
	UpdatedAt time.Time                     `json:"updated_at"`
	Version   int                           `json:"version"`
}

// ArticleListFilter represents filter options for the article list
type ArticleListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active archived"`
	Family   string `form:"family"`
	Unit     string `form:"unit"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToArticleResponse converts a domain Article to ArticleResponse
func ToArticleResponse(a *catalog.Article) ArticleResponse {
	facets := make(map[string]FacetPriceResponse, len(a.Facets))
	for tag, price := range a.Facets {
		facets[string(tag)] = FacetPriceResponse{
			UnitPrice:      price.UnitPrice,
			TaxRatePercent: price.TaxRatePercent,
		}
	}

	return ArticleResponse{
		ID:        a.ID,
		Code:      a.Code,
		Name:      a.Name,
		Unit:      a.Unit,
		Family:    a.Family,
		Status:    string(a.Status),
		Facets:    facets,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
		Version:   a.Version,
	}
}
