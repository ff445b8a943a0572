package printing

import (
	"context"
	"strconv"
	"time"

	"github.com/hydroerp/backend/internal/domain/quote"
)

// QuoteLineData is one printable line of a devis, with every amount
// pre-formatted for the French locale.
type QuoteLineData struct {
	Position           int
	ArticleCode        string
	Label              string
	Unit               string
	Facet              string
	Quantity           string
	UnitPriceFormatted string
	TaxRateFormatted   string
	UntaxedFormatted   string
	TaxFormatted       string
	TaxedFormatted     string
}

// QuoteDocumentData is the full data set bound to the devis template
type QuoteDocumentData struct {
	DraftNumber  string
	CustomerName string
	CustomerRef  string
	Status       string
	Date         time.Time
	Remark       string

	Lines []QuoteLineData

	TotalUntaxedFormatted string
	TotalTaxFormatted     string
	TotalTaxedFormatted   string
	TotalTaxedWords       string
}

// BuildQuoteDocumentData flattens a draft into template-ready data.
// Totals are recomputed from the lines, never read from storage.
func BuildQuoteDocumentData(draft *quote.QuoteDraft) *QuoteDocumentData {
	data := &QuoteDocumentData{
		DraftNumber:  draft.DraftNumber,
		CustomerName: draft.CustomerName,
		CustomerRef:  draft.CustomerRef,
		Status:       string(draft.Status),
		Date:         draft.UpdatedAt,
		Remark:       draft.Remark,
		Lines:        make([]QuoteLineData, 0, len(draft.Lines)),
	}

	for _, line := range draft.Lines {
		totals := line.Totals()
		data.Lines = append(data.Lines, QuoteLineData{
			Position:           line.Position,
			ArticleCode:        line.ArticleCode,
			Label:              line.DisplayLabel(),
			Unit:               line.Unit,
			Facet:              string(line.Facet),
			Quantity:           strconv.FormatInt(line.Quantity, 10),
			UnitPriceFormatted: FormatAmount(line.UnitPrice),
			TaxRateFormatted:   formatPercent(line.TaxRatePercent),
			UntaxedFormatted:   FormatAmount(totals.Untaxed),
			TaxFormatted:       FormatAmount(totals.Tax),
			TaxedFormatted:     FormatAmount(totals.Taxed),
		})
	}

	documentTotals := draft.Totals()
	data.TotalUntaxedFormatted = FormatAmount(documentTotals.TotalUntaxed)
	data.TotalTaxFormatted = FormatAmount(documentTotals.TotalTax)
	data.TotalTaxedFormatted = FormatAmount(documentTotals.TotalTaxed)
	data.TotalTaxedWords = AmountToFrenchWords(documentTotals.TotalTaxed)

	return data
}

// RenderQuoteDocument renders a draft as the standard devis HTML document
func RenderQuoteDocument(ctx context.Context, engine *TemplateEngine, draft *quote.QuoteDraft) (string, error) {
	data := BuildQuoteDocumentData(draft)
	return engine.RenderString(ctx, "devis-"+draft.DraftNumber, DefaultQuoteTemplate, data)
}
