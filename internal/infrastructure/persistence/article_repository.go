package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hydroerp/backend/internal/domain/catalog"
	"github.com/hydroerp/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormArticleRepository implements ArticleRepository using GORM
type GormArticleRepository struct {
	db *gorm.DB
}

// NewGormArticleRepository creates a new GormArticleRepository
func NewGormArticleRepository(db *gorm.DB) *GormArticleRepository {
	return &GormArticleRepository{db: db}
}

// FindByID finds an article by its ID
func (r *GormArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Article, error) {
	var article catalog.Article
	if err := r.db.WithContext(ctx).First(&article, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &article, nil
}

// FindByCode finds an article by its code
func (r *GormArticleRepository) FindByCode(ctx context.Context, code string) (*catalog.Article, error) {
	var article catalog.Article
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &article, nil
}

// FindByIDs finds all articles matching the given IDs
func (r *GormArticleRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Article, error) {
	if len(ids) == 0 {
		return []catalog.Article{}, nil
	}
	var articles []catalog.Article
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// FindAll finds all articles matching the filter
func (r *GormArticleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Article, error) {
	var articles []catalog.Article
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Article{}), filter)
	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// Save persists an article (insert or update)
func (r *GormArticleRepository) Save(ctx context.Context, article *catalog.Article) error {
	return r.db.WithContext(ctx).Save(article).Error
}

// Delete removes an article by ID
func (r *GormArticleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Article{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts articles matching the filter
func (r *GormArticleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.Article{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCode reports whether an article with the given code exists
func (r *GormArticleRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalog.Article{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies search, filters, ordering and pagination
func (r *GormArticleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if orderClause, ok := sortClause(filter, articleSortColumns); ok {
		query = query.Order(orderClause)
	} else {
		query = query.Order("code ASC")
	}

	if filter.PageSize > 0 {
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.PageSize
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormArticleRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR code LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "family":
			query = query.Where("family = ?", value)
		case "unit":
			query = query.Where("unit = ?", value)
		}
	}

	return query
}

var _ catalog.ArticleRepository = (*GormArticleRepository)(nil)
