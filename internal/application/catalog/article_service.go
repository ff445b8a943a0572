package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/hydroerp/backend/internal/domain/catalog"
	"github.com/hydroerp/backend/internal/domain/shared"
)

// ArticleService handles catalog article business operations
type ArticleService struct {
	articleRepo catalog.ArticleRepository
}

// NewArticleService creates a new ArticleService
func NewArticleService(articleRepo catalog.ArticleRepository) *ArticleService {
	return &ArticleService{articleRepo: articleRepo}
}

// Create creates a new article
func (s *ArticleService) Create(ctx context.Context, req CreateArticleRequest) (*ArticleResponse, error) {
	exists, err := s.articleRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Article with this code already exists")
	}

	article, err := catalog.NewArticle(req.Code, req.Name, req.Unit, req.Family)
	if err != nil {
		return nil, err
	}

	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}

	response := ToArticleResponse(article)
	return &response, nil
}

// GetByID retrieves an article by ID
func (s *ArticleService) GetByID(ctx context.Context, articleID uuid.UUID) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	response := ToArticleResponse(article)
	return &response, nil
}

// GetByCode retrieves an article by code
func (s *ArticleService) GetByCode(ctx context.Context, code string) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	response := ToArticleResponse(article)
	return &response, nil
}

// List retrieves articles with filtering and pagination
func (s *ArticleService) List(ctx context.Context, filter ArticleListFilter) ([]ArticleResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "code"
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Family != "" {
		domainFilter.Filters["family"] = filter.Family
	}
	if filter.Unit != "" {
		domainFilter.Filters["unit"] = filter.Unit
	}

	articles, err := s.articleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.articleRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ArticleResponse, len(articles))
	for i := range articles {
		responses[i] = ToArticleResponse(&articles[i])
	}
	return responses, total, nil
}

// Update updates an article's descriptive fields
func (s *ArticleService) Update(ctx context.Context, articleID uuid.UUID, req UpdateArticleRequest) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	name := article.Name
	unit := article.Unit
	family := article.Family
	if req.Name != nil {
		name = *req.Name
	}
	if req.Unit != nil {
		unit = *req.Unit
	}
	if req.Family != nil {
		family = *req.Family
	}

	if err := article.Update(name, unit, family); err != nil {
		return nil, err
	}

	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}

	response := ToArticleResponse(article)
	return &response, nil
}

// SetFacetPrice defines or replaces a price facet on an article
func (s *ArticleService) SetFacetPrice(ctx context.Context, articleID uuid.UUID, facet string, req SetFacetPriceRequest) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	if err := article.SetFacetPrice(catalog.FacetTag(facet), req.UnitPrice, req.TaxRatePercent); err != nil {
		return nil, err
	}

	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}

	response := ToArticleResponse(article)
	return &response, nil
}

// RemoveFacetPrice removes a price facet from an article
func (s *ArticleService) RemoveFacetPrice(ctx context.Context, articleID uuid.UUID, facet string) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	if err := article.RemoveFacetPrice(catalog.FacetTag(facet)); err != nil {
		return nil, err
	}

	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}

	response := ToArticleResponse(article)
	return &response, nil
}

// Archive marks an article as archived so it no longer appears in pickers
func (s *ArticleService) Archive(ctx context.Context, articleID uuid.UUID) (*ArticleResponse, error) {
	return s.changeStatus(ctx, articleID, (*catalog.Article).Archive)
}

// Activate brings an archived article back into use
func (s *ArticleService) Activate(ctx context.Context, articleID uuid.UUID) (*ArticleResponse, error) {
	return s.changeStatus(ctx, articleID, (*catalog.Article).Activate)
}

func (s *ArticleService) changeStatus(ctx context.Context, articleID uuid.UUID, transition func(*catalog.Article) error) (*ArticleResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		return nil, err
	}

	if err := transition(article); err != nil {
		return nil, err
	}

	if err := s.articleRepo.Save(ctx, article); err != nil {
		return nil, err
	}

	response := ToArticleResponse(article)
	return &response, nil
}

// Delete removes an article from the catalog
func (s *ArticleService) Delete(ctx context.Context, articleID uuid.UUID) error {
	return s.articleRepo.Delete(ctx, articleID)
}
