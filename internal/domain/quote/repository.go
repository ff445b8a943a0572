package quote

import (
	"context"

	"github.com/google/uuid"
	"github.com/hydroerp/backend/internal/domain/shared"
)

// QuoteDraftRepository defines the persistence interface for quote drafts
type QuoteDraftRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*QuoteDraft, error)
	FindByNumber(ctx context.Context, draftNumber string) (*QuoteDraft, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]QuoteDraft, error)
	Save(ctx context.Context, draft *QuoteDraft) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	GenerateDraftNumber(ctx context.Context) (string, error)
}
