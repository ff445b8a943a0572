package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hydroerp/backend/internal/domain/catalog"
	"github.com/hydroerp/backend/internal/domain/quote"
	"github.com/hydroerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDraftTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&quote.QuoteDraft{}, &quote.QuoteLine{}))
	return db
}

func newStoredDraft(t *testing.T, repo *GormQuoteDraftRepository, number string) *quote.QuoteDraft {
	draft, err := quote.NewQuoteDraft(number, "SARL Aqua Travaux", decimal.NewFromInt(19))
	require.NoError(t, err)

	article, err := catalog.NewArticle("PVC-DN63", "Tube PVC DN63", "ml", "Canalisation")
	require.NoError(t, err)
	require.NoError(t, article.SetFacetPrice(catalog.FacetSupply, decimal.NewFromInt(100), decimal.NewFromInt(19)))

	line, err := draft.AddLine()
	require.NoError(t, err)
	require.NoError(t, draft.ChooseArticle(line.ID, article))
	require.NoError(t, draft.SetLineQuantity(line.ID, 3))

	require.NoError(t, repo.Save(context.Background(), draft))
	return draft
}

func TestGormQuoteDraftRepository_SaveAndFindByID(t *testing.T) {
	repo := NewGormQuoteDraftRepository(setupDraftTestDB(t), "DEV")
	draft := newStoredDraft(t, repo, "DEV-2026-00001")

	found, err := repo.FindByID(context.Background(), draft.ID)
	require.NoError(t, err)

	assert.Equal(t, "DEV-2026-00001", found.DraftNumber)
	require.Len(t, found.Lines, 1)
	assert.Equal(t, "PVC-DN63", found.Lines[0].ArticleCode)
	assert.Equal(t, int64(3), found.Lines[0].Quantity)
	assert.True(t, found.Lines[0].UnitPrice.Equal(decimal.NewFromInt(100)))
}

func TestGormQuoteDraftRepository_FindByNumber(t *testing.T) {
	repo := NewGormQuoteDraftRepository(setupDraftTestDB(t), "DEV")
	newStoredDraft(t, repo, "DEV-2026-00001")

	found, err := repo.FindByNumber(context.Background(), "DEV-2026-00001")
	require.NoError(t, err)
	assert.Len(t, found.Lines, 1)

	_, err = repo.FindByNumber(context.Background(), "DEV-2026-99999")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormQuoteDraftRepository_SaveReconcilesLines(t *testing.T) {
	repo := NewGormQuoteDraftRepository(setupDraftTestDB(t), "DEV")
	draft := newStoredDraft(t, repo, "DEV-2026-00001")

	t.Run("added lines are persisted", func(t *testing.T) {
		_, err := draft.AddLine()
		require.NoError(t, err)
		require.NoError(t, repo.Save(context.Background(), draft))

		found, err := repo.FindByID(context.Background(), draft.ID)
		require.NoError(t, err)
		assert.Len(t, found.Lines, 2)
	})

	t.Run("removed lines are deleted from storage", func(t *testing.T) {
		require.NoError(t, draft.RemoveLine(draft.Lines[1].ID))
		require.NoError(t, repo.Save(context.Background(), draft))

		found, err := repo.FindByID(context.Background(), draft.ID)
		require.NoError(t, err)
		require.Len(t, found.Lines, 1)

		var orphanCount int64
		require.NoError(t, repo.db.Model(&quote.QuoteLine{}).Count(&orphanCount).Error)
		assert.Equal(t, int64(1), orphanCount)
	})

	t.Run("lines come back in position order", func(t *testing.T) {
		lineB, err := draft.AddLine()
		require.NoError(t, err)
		require.NoError(t, draft.SetLineLabel(lineB.ID, "Ligne B"))
		duplicated, err := draft.DuplicateLine(draft.Lines[0].ID)
		require.NoError(t, err)
		require.NotNil(t, duplicated)
		require.NoError(t, repo.Save(context.Background(), draft))

		found, err := repo.FindByID(context.Background(), draft.ID)
		require.NoError(t, err)
		require.Len(t, found.Lines, 3)
		for i, line := range found.Lines {
			assert.Equal(t, i+1, line.Position)
		}
	})
}

func TestGormQuoteDraftRepository_Delete(t *testing.T) {
	repo := NewGormQuoteDraftRepository(setupDraftTestDB(t), "DEV")
	draft := newStoredDraft(t, repo, "DEV-2026-00001")

	require.NoError(t, repo.Delete(context.Background(), draft.ID))

	_, err := repo.FindByID(context.Background(), draft.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var lineCount int64
	require.NoError(t, repo.db.Model(&quote.QuoteLine{}).Count(&lineCount).Error)
	assert.Equal(t, int64(0), lineCount, "lines are removed with the draft")

	assert.ErrorIs(t, repo.Delete(context.Background(), uuid.New()), shared.ErrNotFound)
}

func TestGormQuoteDraftRepository_FindAllAndCount(t *testing.T) {
	repo := NewGormQuoteDraftRepository(setupDraftTestDB(t), "DEV")
	newStoredDraft(t, repo, "DEV-2026-00001")
	second := newStoredDraft(t, repo, "DEV-2026-00002")
	require.NoError(t, second.Submit())
	require.NoError(t, repo.Save(context.Background(), second))

	t.Run("filters by status", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["status"] = string(quote.DraftStatusSubmitted)

		drafts, err := repo.FindAll(context.Background(), filter)
		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Equal(t, "DEV-2026-00002", drafts[0].DraftNumber)
	})

	t.Run("searches by draft number", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Search = "00001"

		drafts, err := repo.FindAll(context.Background(), filter)
		require.NoError(t, err)
		require.Len(t, drafts, 1)
	})

	t.Run("counts all", func(t *testing.T) {
		count, err := repo.Count(context.Background(), shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestGormQuoteDraftRepository_GenerateDraftNumber(t *testing.T) {
	repo := NewGormQuoteDraftRepository(setupDraftTestDB(t), "DEV")

	t.Run("starts at one for an empty table", func(t *testing.T) {
		number, err := repo.GenerateDraftNumber(context.Background())
		require.NoError(t, err)
		assert.Regexp(t, `^DEV-\d{4}-00001$`, number)
	})

	t.Run("increments past the highest stored number", func(t *testing.T) {
		first, err := repo.GenerateDraftNumber(context.Background())
		require.NoError(t, err)
		newStoredDraft(t, repo, first)

		second, err := repo.GenerateDraftNumber(context.Background())
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
		assert.Regexp(t, `-00002$`, second)
	})
}
