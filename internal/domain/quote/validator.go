package quote

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Violation reports one draft-level rule break. LineIndex is the zero-based
// index of the offending line.
type Violation struct {
	LineIndex int    `json:"line_index"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// Violation codes
const (
	ViolationArticleRequired   = "ARTICLE_REQUIRED"
	ViolationQuantityNotValid  = "QUANTITY_NOT_POSITIVE"
	ViolationNegativeUnitPrice = "NEGATIVE_UNIT_PRICE"
	ViolationTaxRateOutOfRange = "TAX_RATE_OUT_OF_RANGE"
	ViolationDuplicateArticle  = "DUPLICATE_ARTICLE"
)

var hundred = decimal.NewFromInt(100)

// ValidateDraft checks the structural preconditions a draft must satisfy
// before it may be submitted. All violations are collected; the caller is
// expected to present them together rather than stopping at the first.
// An empty result means the draft is submittable.
func ValidateDraft(d *QuoteDraft) []Violation {
	violations := make([]Violation, 0)

	for i := range d.Lines {
		line := &d.Lines[i]

		if line.ArticleID == nil {
			violations = append(violations, Violation{
				LineIndex: i,
				Code:      ViolationArticleRequired,
				Message:   fmt.Sprintf("Line %d has no article selected", i+1),
			})
		}
		if line.Quantity <= 0 {
			violations = append(violations, Violation{
				LineIndex: i,
				Code:      ViolationQuantityNotValid,
				Message:   fmt.Sprintf("Line %d quantity must be a positive whole number", i+1),
			})
		}
		if line.UnitPrice.IsNegative() {
			violations = append(violations, Violation{
				LineIndex: i,
				Code:      ViolationNegativeUnitPrice,
				Message:   fmt.Sprintf("Line %d unit price cannot be negative", i+1),
			})
		}
		if line.TaxRatePercent.IsNegative() || line.TaxRatePercent.GreaterThan(hundred) {
			violations = append(violations, Violation{
				LineIndex: i,
				Code:      ViolationTaxRateOutOfRange,
				Message:   fmt.Sprintf("Line %d tax rate must be between 0 and 100", i+1),
			})
		}
	}

	duplicates := FindDuplicateArticles(d.Lines)
	for i := range d.Lines {
		if d.Lines[i].ArticleID == nil {
			continue
		}
		if _, ok := duplicates[*d.Lines[i].ArticleID]; ok {
			violations = append(violations, Violation{
				LineIndex: i,
				Code:      ViolationDuplicateArticle,
				Message:   fmt.Sprintf("Line %d repeats article %s", i+1, d.Lines[i].ArticleCode),
			})
		}
	}

	return violations
}
