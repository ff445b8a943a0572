package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	domaincatalog "github.com/hydroerp/backend/internal/domain/catalog"
	"github.com/hydroerp/backend/internal/domain/shared"
	"github.com/hydroerp/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestArticleService(t *testing.T) *ArticleService {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domaincatalog.Article{}))

	return NewArticleService(persistence.NewGormArticleRepository(db))
}

func createArticleViaService(t *testing.T, svc *ArticleService, code string) *ArticleResponse {
	resp, err := svc.Create(context.Background(), CreateArticleRequest{
		Code:   code,
		Name:   "Article " + code,
		Unit:   "u",
		Family: "Robinetterie",
	})
	require.NoError(t, err)
	return resp
}

func TestArticleService_Create(t *testing.T) {
	svc := newTestArticleService(t)

	t.Run("creates and uppercases the code", func(t *testing.T) {
		resp, err := svc.Create(context.Background(), CreateArticleRequest{
			Code: "vanne-dn40", Name: "Vanne d'arrêt DN40", Unit: "u",
		})
		require.NoError(t, err)
		assert.Equal(t, "VANNE-DN40", resp.Code)
		assert.Equal(t, "active", resp.Status)
		assert.Empty(t, resp.Facets)
	})

	t.Run("rejects duplicate codes", func(t *testing.T) {
		_, err := svc.Create(context.Background(), CreateArticleRequest{
			Code: "VANNE-DN40", Name: "Doublon", Unit: "u",
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestArticleService_FacetPrices(t *testing.T) {
	svc := newTestArticleService(t)
	created := createArticleViaService(t, svc, "PVC-DN63")

	t.Run("sets a facet price", func(t *testing.T) {
		resp, err := svc.SetFacetPrice(context.Background(), created.ID, "SUPPLY", SetFacetPriceRequest{
			UnitPrice:      decimal.NewFromInt(100),
			TaxRatePercent: decimal.NewFromInt(19),
		})
		require.NoError(t, err)
		require.Contains(t, resp.Facets, "SUPPLY")
		assert.True(t, resp.Facets["SUPPLY"].UnitPrice.Equal(decimal.NewFromInt(100)))
	})

	t.Run("rejects an unknown facet", func(t *testing.T) {
		_, err := svc.SetFacetPrice(context.Background(), created.ID, "RENTAL", SetFacetPriceRequest{
			UnitPrice: decimal.NewFromInt(10),
		})
		require.Error(t, err)
	})

	t.Run("removes a facet price", func(t *testing.T) {
		resp, err := svc.RemoveFacetPrice(context.Background(), created.ID, "SUPPLY")
		require.NoError(t, err)
		assert.NotContains(t, resp.Facets, "SUPPLY")
	})

	t.Run("removing an absent facet fails", func(t *testing.T) {
		_, err := svc.RemoveFacetPrice(context.Background(), created.ID, "BOND")
		assert.ErrorIs(t, err, shared.ErrFacetUnavailable)
	})
}

func TestArticleService_Update(t *testing.T) {
	svc := newTestArticleService(t)
	created := createArticleViaService(t, svc, "ART-A")

	newName := "Tube PEHD DN63"
	resp, err := svc.Update(context.Background(), created.ID, UpdateArticleRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, resp.Name)
	assert.Equal(t, created.Unit, resp.Unit, "unchanged fields are preserved")
}

func TestArticleService_ArchiveAndActivate(t *testing.T) {
	svc := newTestArticleService(t)
	created := createArticleViaService(t, svc, "ART-A")

	archived, err := svc.Archive(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "archived", archived.Status)

	activated, err := svc.Activate(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", activated.Status)
}

func TestArticleService_List(t *testing.T) {
	svc := newTestArticleService(t)
	createArticleViaService(t, svc, "ART-A")
	createArticleViaService(t, svc, "ART-B")

	responses, total, err := svc.List(context.Background(), ArticleListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, responses, 2)
	assert.Equal(t, "ART-A", responses[0].Code, "default order is by code")
}

func TestArticleService_GetAndDelete(t *testing.T) {
	svc := newTestArticleService(t)
	created := createArticleViaService(t, svc, "ART-A")

	byCode, err := svc.GetByCode(context.Background(), "art-a")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byCode.ID)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.GetByID(context.Background(), created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
