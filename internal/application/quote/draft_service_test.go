package quote

import (
	"context"
	"testing"

	domaincatalog "github.com/hydroerp/backend/internal/domain/catalog"
	domainquote "github.com/hydroerp/backend/internal/domain/quote"
	"github.com/hydroerp/backend/internal/domain/shared"
	"github.com/hydroerp/backend/internal/infrastructure/persistence"
	"github.com/hydroerp/backend/internal/infrastructure/printing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type draftServiceFixture struct {
	svc         *DraftService
	articleRepo domaincatalog.ArticleRepository
}

func newDraftServiceFixture(t *testing.T) *draftServiceFixture {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domaincatalog.Article{}, &domainquote.QuoteDraft{}, &domainquote.QuoteLine{}))

	articleRepo := persistence.NewGormArticleRepository(db)
	draftRepo := persistence.NewGormQuoteDraftRepository(db, "DEV")
	svc := NewDraftService(draftRepo, articleRepo, printing.NewTemplateEngine(), decimal.NewFromInt(19))

	return &draftServiceFixture{svc: svc, articleRepo: articleRepo}
}

func (f *draftServiceFixture) storeArticle(t *testing.T, code string, facets map[domaincatalog.FacetTag][2]int64) *domaincatalog.Article {
	article, err := domaincatalog.NewArticle(code, "Article "+code, "ml", "Canalisation")
	require.NoError(t, err)
	for tag, priceAndRate := range facets {
		require.NoError(t, article.SetFacetPrice(tag,
			decimal.NewFromInt(priceAndRate[0]), decimal.NewFromInt(priceAndRate[1])))
	}
	require.NoError(t, f.articleRepo.Save(context.Background(), article))
	return article
}

func (f *draftServiceFixture) createDraft(t *testing.T) *DraftResponse {
	resp, err := f.svc.Create(context.Background(), CreateDraftRequest{
		CustomerName: "SARL Aqua Travaux",
		CustomerRef:  "BC-118",
	})
	require.NoError(t, err)
	return resp
}

func TestDraftService_Create(t *testing.T) {
	f := newDraftServiceFixture(t)

	resp := f.createDraft(t)

	assert.Regexp(t, `^DEV-\d{4}-00001$`, resp.DraftNumber)
	assert.Equal(t, "DRAFT", resp.Status)
	assert.True(t, resp.DefaultTaxRatePercent.Equal(decimal.NewFromInt(19)), "configured default seeds the draft")
	assert.Empty(t, resp.Lines)

	second := f.createDraft(t)
	assert.Regexp(t, `-00002$`, second.DraftNumber)
}

func TestDraftService_CreateWithExplicitTaxRate(t *testing.T) {
	f := newDraftServiceFixture(t)
	nine := decimal.NewFromInt(9)

	resp, err := f.svc.Create(context.Background(), CreateDraftRequest{
		CustomerName:          "Client",
		DefaultTaxRatePercent: &nine,
	})
	require.NoError(t, err)
	assert.True(t, resp.DefaultTaxRatePercent.Equal(nine))
}

func TestDraftService_LineLifecycle(t *testing.T) {
	f := newDraftServiceFixture(t)
	article := f.storeArticle(t, "PVC-DN63", map[domaincatalog.FacetTag][2]int64{
		domaincatalog.FacetSupply:  {100, 19},
		domaincatalog.FacetInstall: {50, 9},
	})
	draft := f.createDraft(t)

	withLine, err := f.svc.AddLine(context.Background(), draft.ID)
	require.NoError(t, err)
	require.Len(t, withLine.Lines, 1)
	lineID := withLine.Lines[0].ID

	t.Run("choosing an article resolves the combined facet", func(t *testing.T) {
		resp, err := f.svc.ChooseArticle(context.Background(), draft.ID, lineID, ChooseArticleRequest{ArticleID: article.ID})
		require.NoError(t, err)

		line := resp.Lines[0]
		assert.Equal(t, "COMBINED", line.Facet)
		assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(150)))
		assert.True(t, line.TaxRatePercent.Equal(decimal.NewFromInt(19)), "COMBINED takes the supply rate")
	})

	t.Run("quantity drives the totals", func(t *testing.T) {
		qty := int64(2)
		resp, err := f.svc.UpdateLine(context.Background(), draft.ID, lineID, UpdateLineRequest{Quantity: &qty})
		require.NoError(t, err)

		line := resp.Lines[0]
		assert.True(t, line.UntaxedAmount.Equal(decimal.NewFromInt(300)))
		assert.True(t, line.TaxAmount.Equal(decimal.NewFromInt(57)))
		assert.True(t, line.TaxedAmount.Equal(decimal.NewFromInt(357)))

		assert.True(t, resp.Totals.TotalUntaxed.Equal(decimal.NewFromInt(300)))
		assert.True(t, resp.Totals.TotalTaxed.Equal(decimal.NewFromInt(357)))
	})

	t.Run("switching to an explicit facet reprices the line", func(t *testing.T) {
		resp, err := f.svc.ChangeFacet(context.Background(), draft.ID, lineID, ChangeFacetRequest{Facet: "INSTALL"})
		require.NoError(t, err)

		line := resp.Lines[0]
		assert.Equal(t, "INSTALL", line.Facet)
		assert.True(t, line.UnitPrice.Equal(decimal.NewFromInt(50)))
		assert.True(t, line.TaxRatePercent.Equal(decimal.NewFromInt(9)))
	})

	t.Run("switching to an absent facet fails and keeps the line", func(t *testing.T) {
		_, err := f.svc.ChangeFacet(context.Background(), draft.ID, lineID, ChangeFacetRequest{Facet: "BOND"})
		require.ErrorIs(t, err, shared.ErrFacetUnavailable)

		resp, err := f.svc.GetByID(context.Background(), draft.ID)
		require.NoError(t, err)
		assert.Equal(t, "INSTALL", resp.Lines[0].Facet)
	})

	t.Run("duplicating inserts the copy below the source", func(t *testing.T) {
		resp, err := f.svc.DuplicateLine(context.Background(), draft.ID, lineID)
		require.NoError(t, err)

		require.Len(t, resp.Lines, 2)
		assert.Equal(t, resp.Lines[0].ArticleCode, resp.Lines[1].ArticleCode)
		assert.NotEqual(t, resp.Lines[0].ID, resp.Lines[1].ID)
		assert.Equal(t, []int{1, 2}, []int{resp.Lines[0].Position, resp.Lines[1].Position})
		assert.Len(t, resp.DuplicateArticleIDs, 1, "both lines now carry the same article")
	})

	t.Run("removing a line renumbers the rest", func(t *testing.T) {
		resp, err := f.svc.RemoveLine(context.Background(), draft.ID, lineID)
		require.NoError(t, err)

		require.Len(t, resp.Lines, 1)
		assert.Equal(t, 1, resp.Lines[0].Position)
		assert.Empty(t, resp.DuplicateArticleIDs)
	})
}

func TestDraftService_ValidateAndSubmit(t *testing.T) {
	f := newDraftServiceFixture(t)
	article := f.storeArticle(t, "ART-A", map[domaincatalog.FacetTag][2]int64{
		domaincatalog.FacetSupply: {100, 19},
	})
	draft := f.createDraft(t)

	withLine, err := f.svc.AddLine(context.Background(), draft.ID)
	require.NoError(t, err)
	lineID := withLine.Lines[0].ID

	t.Run("reports violations without stopping at the first", func(t *testing.T) {
		zero := int64(0)
		_, err := f.svc.UpdateLine(context.Background(), draft.ID, lineID, UpdateLineRequest{Quantity: &zero})
		require.NoError(t, err)

		violations, err := f.svc.Validate(context.Background(), draft.ID)
		require.NoError(t, err)
		require.Len(t, violations, 2)
		assert.Equal(t, "ARTICLE_REQUIRED", violations[0].Code)
		assert.Equal(t, "QUANTITY_NOT_POSITIVE", violations[1].Code)
	})

	t.Run("submit is refused while violations remain", func(t *testing.T) {
		_, err := f.svc.Submit(context.Background(), draft.ID)
		require.Error(t, err)
	})

	t.Run("submit succeeds once the draft is clean", func(t *testing.T) {
		one := int64(1)
		_, err := f.svc.ChooseArticle(context.Background(), draft.ID, lineID, ChooseArticleRequest{ArticleID: article.ID})
		require.NoError(t, err)
		_, err = f.svc.UpdateLine(context.Background(), draft.ID, lineID, UpdateLineRequest{Quantity: &one})
		require.NoError(t, err)

		resp, err := f.svc.Submit(context.Background(), draft.ID)
		require.NoError(t, err)
		assert.Equal(t, "SUBMITTED", resp.Status)
		assert.NotNil(t, resp.SubmittedAt)
	})

	t.Run("submitted drafts cannot be edited or deleted", func(t *testing.T) {
		_, err := f.svc.AddLine(context.Background(), draft.ID)
		require.Error(t, err)

		err = f.svc.Delete(context.Background(), draft.ID)
		require.Error(t, err)
	})
}

func TestDraftService_Totals(t *testing.T) {
	f := newDraftServiceFixture(t)
	article := f.storeArticle(t, "ART-A", map[domaincatalog.FacetTag][2]int64{
		domaincatalog.FacetSupply: {100, 19},
	})
	draft := f.createDraft(t)

	withLine, err := f.svc.AddLine(context.Background(), draft.ID)
	require.NoError(t, err)
	_, err = f.svc.ChooseArticle(context.Background(), draft.ID, withLine.Lines[0].ID, ChooseArticleRequest{ArticleID: article.ID})
	require.NoError(t, err)
	three := int64(3)
	_, err = f.svc.UpdateLine(context.Background(), draft.ID, withLine.Lines[0].ID, UpdateLineRequest{Quantity: &three})
	require.NoError(t, err)

	totals, err := f.svc.Totals(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.True(t, totals.TotalUntaxed.Equal(decimal.NewFromInt(300)))
	assert.True(t, totals.TotalTax.Equal(decimal.NewFromInt(57)))
	assert.True(t, totals.TotalTaxed.Equal(decimal.NewFromInt(357)))
}

func TestDraftService_Print(t *testing.T) {
	f := newDraftServiceFixture(t)
	article := f.storeArticle(t, "ART-A", map[domaincatalog.FacetTag][2]int64{
		domaincatalog.FacetSupply: {100, 19},
	})
	draft := f.createDraft(t)

	withLine, err := f.svc.AddLine(context.Background(), draft.ID)
	require.NoError(t, err)
	_, err = f.svc.ChooseArticle(context.Background(), draft.ID, withLine.Lines[0].ID, ChooseArticleRequest{ArticleID: article.ID})
	require.NoError(t, err)

	html, err := f.svc.Print(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Contains(t, html, draft.DraftNumber)
	assert.Contains(t, html, "SARL Aqua Travaux")
	assert.Contains(t, html, "dinars algériens")
}

func TestDraftService_UpdateHeader(t *testing.T) {
	f := newDraftServiceFixture(t)
	draft := f.createDraft(t)

	newName := "EURL Hydro Service"
	remark := "Validité 30 jours"
	resp, err := f.svc.Update(context.Background(), draft.ID, UpdateDraftRequest{
		CustomerName: &newName,
		Remark:       &remark,
	})
	require.NoError(t, err)
	assert.Equal(t, newName, resp.CustomerName)
	assert.Equal(t, remark, resp.Remark)

	empty := ""
	_, err = f.svc.Update(context.Background(), draft.ID, UpdateDraftRequest{CustomerName: &empty})
	require.Error(t, err)
}
