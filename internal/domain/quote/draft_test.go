package quote

import (
	"testing"

	"github.com/google/uuid"
	"github.com/hydroerp/backend/internal/domain/catalog"
	"github.com/hydroerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helpers
func createTestDraft(t *testing.T) *QuoteDraft {
	draft, err := NewQuoteDraft("DEV-2026-0001", "SARL Hydraulique Ouest", decimal.NewFromInt(19))
	require.NoError(t, err)
	return draft
}

func createSupplyArticle(t *testing.T, code string, price, taxRate float64) *catalog.Article {
	article, err := catalog.NewArticle(code, "Article "+code, "u", "Réseau")
	require.NoError(t, err)
	require.NoError(t, article.SetFacetPrice(catalog.FacetSupply, decimal.NewFromFloat(price), decimal.NewFromFloat(taxRate)))
	return article
}

func addLineWithArticle(t *testing.T, draft *QuoteDraft, article *catalog.Article, quantity int64) *QuoteLine {
	line, err := draft.AddLine()
	require.NoError(t, err)
	require.NoError(t, draft.ChooseArticle(line.ID, article))
	require.NoError(t, draft.SetLineQuantity(line.ID, quantity))
	return line
}

// ============================================
// DraftStatus Tests
// ============================================

func TestDraftStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     DraftStatus
		to       DraftStatus
		canTrans bool
	}{
		{DraftStatusDraft, DraftStatusSubmitted, true},
		{DraftStatusDraft, DraftStatusCancelled, true},
		{DraftStatusSubmitted, DraftStatusDraft, false},
		{DraftStatusSubmitted, DraftStatusCancelled, false},
		{DraftStatusCancelled, DraftStatusDraft, false},
		{DraftStatusCancelled, DraftStatusSubmitted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

// ============================================
// ComputeLineTotals Tests
// ============================================

func TestComputeLineTotals(t *testing.T) {
	t.Run("qty 3 at 100 with 19 percent", func(t *testing.T) {
		totals := ComputeLineTotals(3, decimal.NewFromInt(100), decimal.NewFromInt(19))

		assert.True(t, totals.Untaxed.Equal(decimal.NewFromInt(300)), "untaxed got %s", totals.Untaxed)
		assert.True(t, totals.Tax.Equal(decimal.NewFromInt(57)), "tax got %s", totals.Tax)
		assert.True(t, totals.Taxed.Equal(decimal.NewFromInt(357)), "taxed got %s", totals.Taxed)
	})

	t.Run("zero quantity yields zero amounts", func(t *testing.T) {
		totals := ComputeLineTotals(0, decimal.NewFromInt(100), decimal.NewFromInt(19))
		assert.True(t, totals.Untaxed.IsZero())
		assert.True(t, totals.Tax.IsZero())
		assert.True(t, totals.Taxed.IsZero())
	})

	t.Run("keeps full precision", func(t *testing.T) {
		// 7 * 33.33 = 233.31; 9% of that = 20.9979 - no intermediate rounding
		totals := ComputeLineTotals(7, decimal.NewFromFloat(33.33), decimal.NewFromInt(9))
		assert.True(t, totals.Untaxed.Equal(decimal.NewFromFloat(233.31)))
		assert.True(t, totals.Tax.Equal(decimal.NewFromFloat(20.9979)), "tax got %s", totals.Tax)
	})
}

// ============================================
// NewQuoteDraft Tests
// ============================================

func TestNewQuoteDraft(t *testing.T) {
	t.Run("creates draft with valid inputs", func(t *testing.T) {
		draft, err := NewQuoteDraft("DEV-2026-0001", "Client", decimal.NewFromInt(19))
		require.NoError(t, err)

		assert.Equal(t, "DEV-2026-0001", draft.DraftNumber)
		assert.Equal(t, DraftStatusDraft, draft.Status)
		assert.Empty(t, draft.Lines)
		assert.True(t, draft.DefaultTaxRatePercent.Equal(decimal.NewFromInt(19)))
	})

	t.Run("rejects empty number", func(t *testing.T) {
		_, err := NewQuoteDraft("", "Client", decimal.NewFromInt(19))
		require.Error(t, err)
	})

	t.Run("rejects empty customer", func(t *testing.T) {
		_, err := NewQuoteDraft("DEV-2026-0001", "", decimal.NewFromInt(19))
		require.Error(t, err)
	})

	t.Run("rejects out-of-range default tax rate", func(t *testing.T) {
		_, err := NewQuoteDraft("DEV-2026-0001", "Client", decimal.NewFromInt(120))
		require.Error(t, err)
	})
}

// ============================================
// Line operation Tests
// ============================================

func TestQuoteDraft_AddLine(t *testing.T) {
	draft := createTestDraft(t)

	line, err := draft.AddLine()
	require.NoError(t, err)

	assert.False(t, line.HasArticle())
	assert.Equal(t, int64(1), line.Quantity)
	assert.True(t, line.UnitPrice.IsZero())
	assert.True(t, line.TaxRatePercent.Equal(draft.DefaultTaxRatePercent), "empty line carries the draft default tax rate")
	assert.Equal(t, 1, line.Position)
	require.Len(t, draft.Lines, 1)
}

func TestQuoteDraft_ChooseArticle(t *testing.T) {
	draft := createTestDraft(t)
	line, err := draft.AddLine()
	require.NoError(t, err)

	article, err := catalog.NewArticle("BRANCH-DN25", "Branchement DN25", "u", "Branchement")
	require.NoError(t, err)
	require.NoError(t, article.SetFacetPrice(catalog.FacetSupply, decimal.NewFromInt(100), decimal.NewFromInt(19)))
	require.NoError(t, article.SetFacetPrice(catalog.FacetInstall, decimal.NewFromInt(50), decimal.NewFromInt(9)))

	require.NoError(t, draft.ChooseArticle(line.ID, article))

	got := draft.Lines[0]
	require.NotNil(t, got.ArticleID)
	assert.Equal(t, article.ID, *got.ArticleID)
	assert.Equal(t, "BRANCH-DN25", got.ArticleCode)
	assert.Equal(t, catalog.FacetCombined, got.Facet, "default resolution should pick COMBINED")
	assert.True(t, got.UnitPrice.Equal(decimal.NewFromInt(150)))
	assert.True(t, got.TaxRatePercent.Equal(decimal.NewFromInt(19)))
}

func TestQuoteDraft_ChooseArticle_NoFacetFallsBackToDraftDefault(t *testing.T) {
	draft := createTestDraft(t)
	line, err := draft.AddLine()
	require.NoError(t, err)

	article, err := catalog.NewArticle("DIVERS", "Prestation diverse", "u", "")
	require.NoError(t, err)

	require.NoError(t, draft.ChooseArticle(line.ID, article))

	got := draft.Lines[0]
	assert.Equal(t, catalog.FacetNone, got.Facet)
	assert.True(t, got.UnitPrice.IsZero())
	assert.True(t, got.TaxRatePercent.Equal(decimal.NewFromInt(19)), "draft default tax rate applies")
}

func TestQuoteDraft_ChangeFacet(t *testing.T) {
	draft := createTestDraft(t)
	article, err := catalog.NewArticle("COMPTEUR-15", "Compteur 15mm", "u", "Comptage")
	require.NoError(t, err)
	require.NoError(t, article.SetFacetPrice(catalog.FacetSupply, decimal.NewFromInt(80), decimal.NewFromInt(19)))
	require.NoError(t, article.SetFacetPrice(catalog.FacetService, decimal.NewFromInt(25), decimal.NewFromInt(9)))

	line, err := draft.AddLine()
	require.NoError(t, err)
	require.NoError(t, draft.ChooseArticle(line.ID, article))
	require.Equal(t, catalog.FacetSupply, draft.Lines[0].Facet)

	t.Run("switches to an available facet", func(t *testing.T) {
		require.NoError(t, draft.ChangeFacet(line.ID, article, catalog.FacetService))
		assert.Equal(t, catalog.FacetService, draft.Lines[0].Facet)
		assert.True(t, draft.Lines[0].UnitPrice.Equal(decimal.NewFromInt(25)))
		assert.True(t, draft.Lines[0].TaxRatePercent.Equal(decimal.NewFromInt(9)))
	})

	t.Run("fails on an unavailable facet and keeps the line unchanged", func(t *testing.T) {
		err := draft.ChangeFacet(line.ID, article, catalog.FacetCombined)
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrFacetUnavailable)
		assert.Equal(t, catalog.FacetService, draft.Lines[0].Facet)
		assert.True(t, draft.Lines[0].UnitPrice.Equal(decimal.NewFromInt(25)))
	})

	t.Run("fails when the article does not match the line", func(t *testing.T) {
		other := createSupplyArticle(t, "AUTRE", 10, 19)
		err := draft.ChangeFacet(line.ID, other, catalog.FacetSupply)
		require.Error(t, err)
	})
}

func TestQuoteDraft_ManualOverrides(t *testing.T) {
	draft := createTestDraft(t)
	article := createSupplyArticle(t, "PVC-DN63", 100, 19)
	line := addLineWithArticle(t, draft, article, 2)

	require.NoError(t, draft.OverrideLineUnitPrice(line.ID, decimal.NewFromFloat(95.5)))
	require.NoError(t, draft.OverrideLineTaxRate(line.ID, decimal.NewFromInt(9)))

	assert.True(t, draft.Lines[0].UnitPrice.Equal(decimal.NewFromFloat(95.5)))
	assert.True(t, draft.Lines[0].TaxRatePercent.Equal(decimal.NewFromInt(9)))

	require.Error(t, draft.OverrideLineUnitPrice(line.ID, decimal.NewFromInt(-1)))
	require.Error(t, draft.OverrideLineTaxRate(line.ID, decimal.NewFromInt(101)))
}

func TestQuoteDraft_DuplicateLine(t *testing.T) {
	draft := createTestDraft(t)
	first := addLineWithArticle(t, draft, createSupplyArticle(t, "ART-A", 10, 19), 1)
	addLineWithArticle(t, draft, createSupplyArticle(t, "ART-B", 20, 19), 1)

	copied, err := draft.DuplicateLine(first.ID)
	require.NoError(t, err)

	require.Len(t, draft.Lines, 3)
	assert.NotEqual(t, first.ID, copied.ID, "copy gets a fresh identity")
	// Copy sits directly after its source; order of the rest is preserved
	assert.Equal(t, "ART-A", draft.Lines[0].ArticleCode)
	assert.Equal(t, "ART-A", draft.Lines[1].ArticleCode)
	assert.Equal(t, "ART-B", draft.Lines[2].ArticleCode)
	assert.Equal(t, []int{1, 2, 3}, []int{draft.Lines[0].Position, draft.Lines[1].Position, draft.Lines[2].Position})
}

func TestQuoteDraft_RemoveLine(t *testing.T) {
	draft := createTestDraft(t)
	addLineWithArticle(t, draft, createSupplyArticle(t, "ART-A", 10, 19), 1)
	second := addLineWithArticle(t, draft, createSupplyArticle(t, "ART-B", 20, 19), 1)
	addLineWithArticle(t, draft, createSupplyArticle(t, "ART-C", 30, 19), 1)

	require.NoError(t, draft.RemoveLine(second.ID))

	require.Len(t, draft.Lines, 2)
	assert.Equal(t, "ART-A", draft.Lines[0].ArticleCode)
	assert.Equal(t, "ART-C", draft.Lines[1].ArticleCode)
	assert.Equal(t, 1, draft.Lines[0].Position)
	assert.Equal(t, 2, draft.Lines[1].Position, "positions close the gap without reordering")

	err := draft.RemoveLine(uuid.New())
	require.Error(t, err)
}

// ============================================
// Totals Tests
// ============================================

func TestQuoteDraft_Totals(t *testing.T) {
	draft := createTestDraft(t)
	addLineWithArticle(t, draft, createSupplyArticle(t, "ART-A", 100, 19), 3) // 300 + 57
	addLineWithArticle(t, draft, createSupplyArticle(t, "ART-B", 100, 0), 1)  // 100 + 0

	totals := draft.Totals()

	assert.True(t, totals.TotalUntaxed.Equal(decimal.NewFromInt(400)), "untaxed got %s", totals.TotalUntaxed)
	assert.True(t, totals.TotalTax.Equal(decimal.NewFromInt(57)), "tax got %s", totals.TotalTax)
	assert.True(t, totals.TotalTaxed.Equal(decimal.NewFromInt(457)), "taxed got %s", totals.TotalTaxed)
}

func TestQuoteDraft_Totals_EmptyDraft(t *testing.T) {
	draft := createTestDraft(t)
	totals := draft.Totals()

	assert.True(t, totals.TotalUntaxed.IsZero())
	assert.True(t, totals.TotalTax.IsZero())
	assert.True(t, totals.TotalTaxed.IsZero())
}

func TestQuoteDraft_Totals_DerivedNotStale(t *testing.T) {
	draft := createTestDraft(t)
	article := createSupplyArticle(t, "ART-A", 100, 19)
	line := addLineWithArticle(t, draft, article, 1)

	before := draft.Totals()
	require.True(t, before.TotalUntaxed.Equal(decimal.NewFromInt(100)))

	require.NoError(t, draft.SetLineQuantity(line.ID, 5))
	after := draft.Totals()
	assert.True(t, after.TotalUntaxed.Equal(decimal.NewFromInt(500)), "totals are recomputed from line state on every read")
}

// ============================================
// Duplicate detection Tests
// ============================================

func TestFindDuplicateArticles(t *testing.T) {
	draft := createTestDraft(t)
	repeated := createSupplyArticle(t, "ART-A", 10, 19)

	lineA, err := draft.AddLine()
	require.NoError(t, err)
	require.NoError(t, draft.ChooseArticle(lineA.ID, repeated))

	lineB, err := draft.AddLine()
	require.NoError(t, err)
	require.NoError(t, draft.ChooseArticle(lineB.ID, repeated))

	addLineWithArticle(t, draft, createSupplyArticle(t, "ART-B", 20, 19), 1)

	duplicates := FindDuplicateArticles(draft.Lines)
	require.Len(t, duplicates, 1)
	assert.Equal(t, []int{0, 1}, duplicates[repeated.ID], "both lines referencing the article are reported")

	ids := draft.DuplicateArticleIDs()
	require.Len(t, ids, 1)
	assert.Equal(t, repeated.ID, ids[0])
}

func TestFindDuplicateArticles_NilArticlesNeverCount(t *testing.T) {
	draft := createTestDraft(t)
	_, err := draft.AddLine()
	require.NoError(t, err)
	_, err = draft.AddLine()
	require.NoError(t, err)

	assert.Empty(t, FindDuplicateArticles(draft.Lines))
}

// ============================================
// Lifecycle Tests
// ============================================

func TestQuoteDraft_Submit(t *testing.T) {
	t.Run("submits a valid draft", func(t *testing.T) {
		draft := createTestDraft(t)
		addLineWithArticle(t, draft, createSupplyArticle(t, "ART-A", 10, 19), 2)

		require.NoError(t, draft.Submit())
		assert.Equal(t, DraftStatusSubmitted, draft.Status)
		require.NotNil(t, draft.SubmittedAt)
	})

	t.Run("refuses a draft with violations", func(t *testing.T) {
		draft := createTestDraft(t)
		_, err := draft.AddLine()
		require.NoError(t, err)

		err = draft.Submit()
		require.Error(t, err)
		assert.Equal(t, DraftStatusDraft, draft.Status)
	})

	t.Run("refuses a second submission", func(t *testing.T) {
		draft := createTestDraft(t)
		addLineWithArticle(t, draft, createSupplyArticle(t, "ART-A", 10, 19), 2)
		require.NoError(t, draft.Submit())

		require.Error(t, draft.Submit())
	})
}

func TestQuoteDraft_EditAfterSubmitRejected(t *testing.T) {
	draft := createTestDraft(t)
	line := addLineWithArticle(t, draft, createSupplyArticle(t, "ART-A", 10, 19), 2)
	require.NoError(t, draft.Submit())

	_, err := draft.AddLine()
	require.Error(t, err)
	require.Error(t, draft.SetLineQuantity(line.ID, 3))
	require.Error(t, draft.RemoveLine(line.ID))
	_, err = draft.DuplicateLine(line.ID)
	require.Error(t, err)
}

func TestQuoteDraft_Cancel(t *testing.T) {
	draft := createTestDraft(t)
	require.NoError(t, draft.Cancel())
	assert.Equal(t, DraftStatusCancelled, draft.Status)
	require.NotNil(t, draft.CancelledAt)

	require.Error(t, draft.Cancel())
}
