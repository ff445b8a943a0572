package catalog

import (
	"strings"
	"time"

	"github.com/hydroerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ArticleStatus represents the status of a catalog article
type ArticleStatus string

const (
	ArticleStatusActive   ArticleStatus = "active"
	ArticleStatusArchived ArticleStatus = "archived"
)

// Article represents a catalog entry with its available price facets.
// It is the aggregate root for catalog management; the quote engine
// treats articles as an immutable snapshot and only reads them.
type Article struct {
	shared.BaseAggregateRoot
	Code   string        `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name   string        `gorm:"type:varchar(200);not null"`
	Unit   string        `gorm:"type:varchar(20);not null"` // Unit of measure label (e.g., "ml", "u", "m3")
	Family string        `gorm:"type:varchar(100);index"`   // Family/category label
	Facets FacetPrices   `gorm:"type:jsonb;not null"`
	Status ArticleStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Article) TableName() string {
	return "articles"
}

// NewArticle creates a new catalog article with no priced facets
func NewArticle(code, name, unit, family string) (*Article, error) {
	if err := validateArticleCode(code); err != nil {
		return nil, err
	}
	if err := validateArticleName(name); err != nil {
		return nil, err
	}
	if unit == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}
	if len(unit) > 20 {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit cannot exceed 20 characters")
	}

	return &Article{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Unit:              unit,
		Family:            family,
		Facets:            FacetPrices{},
		Status:            ArticleStatusActive,
	}, nil
}

// Update updates the article's basic information
func (a *Article) Update(name, unit, family string) error {
	if err := validateArticleName(name); err != nil {
		return err
	}
	if unit == "" {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot be empty")
	}

	a.Name = name
	a.Unit = unit
	a.Family = family
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// SetFacetPrice defines or replaces the price of one facet.
// COMBINED cannot be set directly; it is derived from SUPPLY + INSTALL.
func (a *Article) SetFacetPrice(tag FacetTag, unitPrice, taxRatePercent decimal.Decimal) error {
	if !tag.IsStorable() {
		return shared.NewDomainError("INVALID_FACET", "Facet tag is not a storable price facet")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Facet unit price cannot be negative")
	}
	if taxRatePercent.IsNegative() || taxRatePercent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate must be between 0 and 100")
	}

	if a.Facets == nil {
		a.Facets = FacetPrices{}
	}
	a.Facets[tag] = FacetPrice{UnitPrice: unitPrice, TaxRatePercent: taxRatePercent}
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// RemoveFacetPrice removes the price definition of one facet
func (a *Article) RemoveFacetPrice(tag FacetTag) error {
	if !tag.IsStorable() {
		return shared.NewDomainError("INVALID_FACET", "Facet tag is not a storable price facet")
	}
	if !a.Facets.Has(tag) {
		return shared.ErrFacetUnavailable
	}

	delete(a.Facets, tag)
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// HasFacet reports whether the article defines a price for the facet.
// COMBINED is present only when both SUPPLY and INSTALL are priced.
func (a *Article) HasFacet(tag FacetTag) bool {
	if tag == FacetCombined {
		return a.Facets.Has(FacetSupply) && a.Facets.Has(FacetInstall)
	}
	return a.Facets.Has(tag)
}

// Archive archives the article so it no longer appears in catalog pickers
func (a *Article) Archive() error {
	if a.Status == ArticleStatusArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "Article is already archived")
	}
	a.Status = ArticleStatusArchived
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// Activate restores an archived article
func (a *Article) Activate() error {
	if a.Status == ArticleStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Article is already active")
	}
	a.Status = ArticleStatusActive
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// IsActive returns true if the article is active
func (a *Article) IsActive() bool {
	return a.Status == ArticleStatusActive
}

// validateArticleCode validates the article code
func validateArticleCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Article code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Article code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Article code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateArticleName validates the article name
func validateArticleName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Article name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Article name cannot exceed 200 characters")
	}
	return nil
}
