package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hydroerp/backend/internal/domain/quote"
	"github.com/hydroerp/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormQuoteDraftRepository implements QuoteDraftRepository using GORM
type GormQuoteDraftRepository struct {
	db *gorm.DB
	// numberPrefix is prepended to generated draft numbers, e.g. "DEV"
	numberPrefix string
}

// NewGormQuoteDraftRepository creates a new GormQuoteDraftRepository
func NewGormQuoteDraftRepository(db *gorm.DB, numberPrefix string) *GormQuoteDraftRepository {
	if numberPrefix == "" {
		numberPrefix = "DEV"
	}
	return &GormQuoteDraftRepository{db: db, numberPrefix: numberPrefix}
}

// FindByID finds a draft by its ID, lines included in position order
func (r *GormQuoteDraftRepository) FindByID(ctx context.Context, id uuid.UUID) (*quote.QuoteDraft, error) {
	var draft quote.QuoteDraft
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&draft, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &draft, nil
}

// FindByNumber finds a draft by its draft number
func (r *GormQuoteDraftRepository) FindByNumber(ctx context.Context, draftNumber string) (*quote.QuoteDraft, error) {
	var draft quote.QuoteDraft
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("draft_number = ?", draftNumber).
		First(&draft).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &draft, nil
}

// FindAll finds all drafts matching the filter, lines included
func (r *GormQuoteDraftRepository) FindAll(ctx context.Context, filter shared.Filter) ([]quote.QuoteDraft, error) {
	var drafts []quote.QuoteDraft
	query := r.applyFilter(r.db.WithContext(ctx).Model(&quote.QuoteDraft{}), filter).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		})
	if err := query.Find(&drafts).Error; err != nil {
		return nil, err
	}
	return drafts, nil
}

// Save persists a draft and reconciles its lines: removed lines are deleted,
// remaining ones are inserted or updated.
func (r *GormQuoteDraftRepository) Save(ctx context.Context, draft *quote.QuoteDraft) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(draft).Error; err != nil {
			return err
		}

		currentLineIDs := make([]uuid.UUID, len(draft.Lines))
		for i, line := range draft.Lines {
			currentLineIDs[i] = line.ID
		}

		if len(currentLineIDs) > 0 {
			if err := tx.Where("draft_id = ? AND id NOT IN ?", draft.ID, currentLineIDs).
				Delete(&quote.QuoteLine{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("draft_id = ?", draft.ID).
				Delete(&quote.QuoteLine{}).Error; err != nil {
				return err
			}
		}

		for i := range draft.Lines {
			draft.Lines[i].DraftID = draft.ID
			if err := tx.Save(&draft.Lines[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete removes a draft and its lines
func (r *GormQuoteDraftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("draft_id = ?", id).Delete(&quote.QuoteLine{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&quote.QuoteDraft{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts drafts matching the filter
func (r *GormQuoteDraftRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&quote.QuoteDraft{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateDraftNumber produces the next sequential number for the current
// year, e.g. "DEV-2026-00042".
func (r *GormQuoteDraftRepository) GenerateDraftNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("%s-%d-", r.numberPrefix, year)

	var lastDraft quote.QuoteDraft
	err := r.db.WithContext(ctx).
		Model(&quote.QuoteDraft{}).
		Where("draft_number LIKE ?", prefix+"%").
		Order("draft_number DESC").
		First(&lastDraft).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastDraft.DraftNumber != "" {
		parts := strings.Split(lastDraft.DraftNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

// applyFilter applies search, filters, ordering and pagination
func (r *GormQuoteDraftRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if orderClause, ok := sortClause(filter, draftSortColumns); ok {
		query = query.Order(orderClause)
	} else {
		query = query.Order("created_at DESC")
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
func (r *GormQuoteDraftRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("draft_number LIKE ? OR customer_name LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "customer_name":
			query = query.Where("customer_name = ?", value)
		}
	}

	return query
}

var _ quote.QuoteDraftRepository = (*GormQuoteDraftRepository)(nil)
