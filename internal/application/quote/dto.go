package quote

import (
	"time"

	"github.com/google/uuid"
	"github.com/hydroerp/backend/internal/domain/quote"
	"github.com/shopspring/decimal"
)

// CreateDraftRequest represents a request to open a new quote draft
type CreateDraftRequest struct {
	CustomerName string `json:"customer_name" binding:"required,min=1,max=200"`
	CustomerRef  string `json:"customer_ref" binding:"max=100"`
	Remark       string `json:"remark" binding:"max=2000"`
	// DefaultTaxRatePercent overrides the configured default when provided
	DefaultTaxRatePercent *decimal.Decimal `json:"default_tax_rate_percent"`
}

// UpdateDraftRequest represents a request to update draft header fields
type UpdateDraftRequest struct {
	CustomerName *string `json:"customer_name" binding:"omitempty,min=1,max=200"`
	CustomerRef  *string `json:"customer_ref" binding:"omitempty,max=100"`
	Remark       *string `json:"remark" binding:"omitempty,max=2000"`
}

// ChooseArticleRequest binds an article to a draft line
type ChooseArticleRequest struct {
	ArticleID uuid.UUID `json:"article_id" binding:"required"`
}

// ChangeFacetRequest switches a line to an explicit price facet
type ChangeFacetRequest struct {
	Facet string `json:"facet" binding:"required,facet"`
}

// UpdateLineRequest updates a line. Setting an article re-resolves the
// default facet; setting a facet switches to it explicitly. Price and
// tax overrides are applied after resolution.
type UpdateLineRequest struct {
	ArticleID      *uuid.UUID       `json:"article_id"`
	Facet          *string          `json:"facet" binding:"omitempty,facet"`
	Quantity       *int64           `json:"quantity"`
	UnitPrice      *decimal.Decimal `json:"unit_price"`
	TaxRatePercent *decimal.Decimal `json:"tax_rate_percent"`
	Label          *string          `json:"label" binding:"omitempty,max=500"`
}

// LineResponse represents a draft line in API responses, with its
// derived amounts
type LineResponse struct {
	ID             uuid.UUID       `json:"id"`
	Position       int             `json:"position"`
	ArticleID      *uuid.UUID      `json:"article_id"`
	ArticleCode    string          `json:"article_code"`
	Label          string          `json:"label"`
	Unit           string          `json:"unit"`
	Facet          string          `json:"facet"`
	Quantity       int64           `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
	UntaxedAmount  decimal.Decimal `json:"untaxed_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	TaxedAmount    decimal.Decimal `json:"taxed_amount"`
}

// TotalsResponse represents the document totals of a draft
type TotalsResponse struct {
	TotalUntaxed decimal.Decimal `json:"total_untaxed"`
	TotalTax     decimal.Decimal `json:"total_tax"`
	TotalTaxed   decimal.Decimal `json:"total_taxed"`
}

// ViolationResponse represents one validation finding on a draft
type ViolationResponse struct {
	LineIndex int    `json:"line_index"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// DraftResponse represents a quote draft in API responses
type DraftResponse struct {
	ID                    uuid.UUID       `json:"id"`
	DraftNumber           string          `json:"draft_number"`
	CustomerName          string          `json:"customer_name"`
	CustomerRef           string          `json:"customer_ref"`
	DefaultTaxRatePercent decimal.Decimal `json:"default_tax_rate_percent"`
	Status                string          `json:"status"`
	Remark                string          `json:"remark"`
	Lines                 []LineResponse  `json:"lines"`
	Totals                TotalsResponse  `json:"totals"`
	DuplicateArticleIDs   []uuid.UUID     `json:"duplicate_article_ids"`
	SubmittedAt           *time.Time      `json:"submitted_at"`
	CancelledAt           *time.Time      `json:"cancelled_at"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
	Version               int             `json:"version"`
}

// DraftListFilter represents filter options for the draft list
type DraftListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=DRAFT SUBMITTED CANCELLED"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToLineResponse converts a domain QuoteLine to LineResponse
func ToLineResponse(l *quote.QuoteLine) LineResponse {
	totals := l.Totals()
	return LineResponse{
		ID:             l.ID,
		Position:       l.Position,
		ArticleID:      l.ArticleID,
		ArticleCode:    l.ArticleCode,
		Label:          l.DisplayLabel(),
		Unit:           l.Unit,
		Facet:          string(l.Facet),
		Quantity:       l.Quantity,
		UnitPrice:      l.UnitPrice,
		TaxRatePercent: l.TaxRatePercent,
		UntaxedAmount:  totals.Untaxed,
		TaxAmount:      totals.Tax,
		TaxedAmount:    totals.Taxed,
	}
}

// ToTotalsResponse converts domain DocumentTotals to TotalsResponse
func ToTotalsResponse(t quote.DocumentTotals) TotalsResponse {
	return TotalsResponse{
		TotalUntaxed: t.TotalUntaxed,
		TotalTax:     t.TotalTax,
		TotalTaxed:   t.TotalTaxed,
	}
}

// ToDraftResponse converts a domain QuoteDraft to DraftResponse
func ToDraftResponse(d *quote.QuoteDraft) DraftResponse {
	lines := make([]LineResponse, len(d.Lines))
	for i := range d.Lines {
		lines[i] = ToLineResponse(&d.Lines[i])
	}

	return DraftResponse{
		ID:                    d.ID,
		DraftNumber:           d.DraftNumber,
		CustomerName:          d.CustomerName,
		CustomerRef:           d.CustomerRef,
		DefaultTaxRatePercent: d.DefaultTaxRatePercent,
		Status:                string(d.Status),
		Remark:                d.Remark,
		Lines:                 lines,
		Totals:                ToTotalsResponse(d.Totals()),
		DuplicateArticleIDs:   d.DuplicateArticleIDs(),
		SubmittedAt:           d.SubmittedAt,
		CancelledAt:           d.CancelledAt,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
		Version:               d.Version,
	}
}

// ToViolationResponses converts domain violations to their API form
func ToViolationResponses(violations []quote.Violation) []ViolationResponse {
	responses := make([]ViolationResponse, len(violations))
	for i, v := range violations {
		responses[i] = ViolationResponse{
			LineIndex: v.LineIndex,
			Code:      v.Code,
			Message:   v.Message,
		}
	}
	return responses
}
