package quote

import (
	"context"

	"github.com/google/uuid"
	"github.com/hydroerp/backend/internal/domain/catalog"
	"github.com/hydroerp/backend/internal/domain/quote"
	"github.com/hydroerp/backend/internal/domain/shared"
	"github.com/hydroerp/backend/internal/infrastructure/printing"
	"github.com/shopspring/decimal"
)

// DraftService handles quote draft business operations
type DraftService struct {
	draftRepo   quote.QuoteDraftRepository
	articleRepo catalog.ArticleRepository
	engine      *printing.TemplateEngine
	// defaultTaxRate seeds new drafts when the request carries no rate
	defaultTaxRate decimal.Decimal
}

// NewDraftService creates a new DraftService
func NewDraftService(
	draftRepo quote.QuoteDraftRepository,
	articleRepo catalog.ArticleRepository,
	engine *printing.TemplateEngine,
	defaultTaxRate decimal.Decimal,
) *DraftService {
	return &DraftService{
		draftRepo:      draftRepo,
		articleRepo:    articleRepo,
		engine:         engine,
		defaultTaxRate: defaultTaxRate,
	}
}

// Create opens a new draft with a generated draft number
func (s *DraftService) Create(ctx context.Context, req CreateDraftRequest) (*DraftResponse, error) {
	draftNumber, err := s.draftRepo.GenerateDraftNumber(ctx)
	if err != nil {
		return nil, err
	}

	taxRate := s.defaultTaxRate
	if req.DefaultTaxRatePercent != nil {
		taxRate = *req.DefaultTaxRatePercent
	}

	draft, err := quote.NewQuoteDraft(draftNumber, req.CustomerName, taxRate)
	if err != nil {
		return nil, err
	}
	draft.CustomerRef = req.CustomerRef
	if req.Remark != "" {
		draft.SetRemark(req.Remark)
	}

	if err := s.draftRepo.Save(ctx, draft); err != nil {
		return nil, err
	}

	response := ToDraftResponse(draft)
	return &response, nil
}

// GetByID retrieves a draft by ID
func (s *DraftService) GetByID(ctx context.Context, draftID uuid.UUID) (*DraftResponse, error) {
	draft, err := s.draftRepo.FindByID(ctx, draftID)
	if err != nil {
		return nil, err
	}

	response := ToDraftResponse(draft)
	return &response, nil
}

// GetByNumber retrieves a draft by its draft number
func (s *DraftService) GetByNumber(ctx context.Context, draftNumber string) (*DraftResponse, error) {
	draft, err := s.draftRepo.FindByNumber(ctx, draftNumber)
	if err != nil {
		return nil, err
	}

	response := ToDraftResponse(draft)
	return &response, nil
}

// List retrieves drafts with filtering and pagination
func (s *DraftService) List(ctx context.Context, filter DraftListFilter) ([]DraftResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
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

	drafts, err := s.draftRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.draftRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]DraftResponse, len(drafts))
	for i := range drafts {
		responses[i] = ToDraftResponse(&drafts[i])
	}
	return responses, total, nil
}

// Update updates a draft's header fields
func (s *DraftService) Update(ctx context.Context, draftID uuid.UUID, req UpdateDraftRequest) (*DraftResponse, error) {
	return s.mutate(ctx, draftID, func(draft *quote.QuoteDraft) error {
		if draft.Status != quote.DraftStatusDraft {
			return shared.NewDomainError("INVALID_STATE", "Cannot edit a non-draft quote")
		}
		if req.CustomerName != nil {
			if *req.CustomerName == "" {
				return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
			}
			draft.CustomerName = *req.CustomerName
		}
		if req.CustomerRef != nil {
			draft.CustomerRef = *req.CustomerRef
		}
		if req.Remark != nil {
			draft.SetRemark(*req.Remark)
		}
		return nil
	})
}

// Delete removes a draft. Submitted quotes are kept for the record and
// cannot be deleted.
func (s *DraftService) Delete(ctx context.Context, draftID uuid.UUID) error {
	draft, err := s.draftRepo.FindByID(ctx, draftID)
	if err != nil {
		return err
	}
	if draft.Status == quote.DraftStatusSubmitted {
		return shared.NewDomainError("INVALID_STATE", "Submitted quotes cannot be deleted")
	}
	return s.draftRepo.Delete(ctx, draftID)
}

// AddLine appends an empty line to the draft
func (s *DraftService) AddLine(ctx context.Context, draftID uuid.UUID) (*DraftResponse, error) {
	return s.mutate(ctx, draftID, func(draft *quote.QuoteDraft) error {
		_, err := draft.AddLine()
		return err
	})
}

// ChooseArticle binds an article to a line, resolving its default facet
func (s *DraftService) ChooseArticle(ctx context.Context, draftID, lineID uuid.UUID, req ChooseArticleRequest) (*DraftResponse, error) {
	article, err := s.articleRepo.FindByID(ctx, req.ArticleID)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, draftID, func(draft *quote.QuoteDraft) error {
		return draft.ChooseArticle(lineID, article)
	})
}

// ChangeFacet switches a line to an explicit facet of its article
func (s *DraftService) ChangeFacet(ctx context.Context, draftID, lineID uuid.UUID, req ChangeFacetRequest) (*DraftResponse, error) {
	draft, err := s.draftRepo.FindByID(ctx, draftID)
	if err != nil {
		return nil, err
	}

	line, err := draft.FindLine(lineID)
	if err != nil {
		return nil, err
	}
	if !line.HasArticle() {
		return nil, shared.NewDomainError("ARTICLE_REQUIRED", "Line has no article to change facet on")
	}

	article, err := s.articleRepo.FindByID(ctx, *line.ArticleID)
	if err != nil {
		return nil, err
	}

	if err := draft.ChangeFacet(lineID, article, catalog.FacetTag(req.Facet)); err != nil {
		return nil, err
	}

	if err := s.draftRepo.Save(ctx, draft); err != nil {
		return nil, err
	}

	response := ToDraftResponse(draft)
	return &response, nil
}

// UpdateLine applies article, facet, quantity, price, tax rate and label
// changes to a line. Overrides are applied after any article or facet
// resolution so they win.
func (s *DraftService) UpdateLine(ctx context.Context, draftID, lineID uuid.UUID, req UpdateLineRequest) (*DraftResponse, error) {
	return s.mutate(ctx, draftID, func(draft *quote.QuoteDraft) error {
		if req.ArticleID != nil {
			article, err := s.articleRepo.FindByID(ctx, *req.ArticleID)
			if err != nil {
				return err
			}
			if err := draft.ChooseArticle(lineID, article); err != nil {
				return err
			}
		}
		if req.Facet != nil {
			line, err := draft.FindLine(lineID)
			if err != nil {
				return err
			}
			if !line.HasArticle() {
				return shared.NewDomainError("ARTICLE_REQUIRED", "Line has no article to change facet on")
			}
			article, err := s.articleRepo.FindByID(ctx, *line.ArticleID)
			if err != nil {
				return err
			}
			if err := draft.ChangeFacet(lineID, article, catalog.FacetTag(*req.Facet)); err != nil {
				return err
			}
		}
		if req.Quantity != nil {
			if err := draft.SetLineQuantity(lineID, *req.Quantity); err != nil {
				return err
			}
		}
		if req.UnitPrice != nil {
			if err := draft.OverrideLineUnitPrice(lineID, *req.UnitPrice); err != nil {
				return err
			}
		}
		if req.TaxRatePercent != nil {
			if err := draft.OverrideLineTaxRate(lineID, *req.TaxRatePercent); err != nil {
				return err
			}
		}
		if req.Label != nil {
			if err := draft.SetLineLabel(lineID, *req.Label); err != nil {
				return err
			}
		}
		return nil
	})
}

// DuplicateLine copies a line directly below its source
func (s *DraftService) DuplicateLine(ctx context.Context, draftID, lineID uuid.UUID) (*DraftResponse, error) {
	return s.mutate(ctx, draftID, func(draft *quote.QuoteDraft) error {
		_, err := draft.DuplicateLine(lineID)
		return err
	})
}

// RemoveLine deletes a line, preserving the order of the remaining ones
func (s *DraftService) RemoveLine(ctx context.Context, draftID, lineID uuid.UUID) (*DraftResponse, error) {
	return s.mutate(ctx, draftID, func(draft *quote.QuoteDraft) error {
		return draft.RemoveLine(lineID)
	})
}

// Totals recomputes the document totals of a draft
func (s *DraftService) Totals(ctx context.Context, draftID uuid.UUID) (*TotalsResponse, error) {
	draft, err := s.draftRepo.FindByID(ctx, draftID)
	if err != nil {
		return nil, err
	}

	totals := ToTotalsResponse(draft.Totals())
	return &totals, nil
}

// Validate runs all submission checks and returns every violation found
func (s *DraftService) Validate(ctx context.Context, draftID uuid.UUID) ([]ViolationResponse, error) {
	draft, err := s.draftRepo.FindByID(ctx, draftID)
	if err != nil {
		return nil, err
	}

	return ToViolationResponses(quote.ValidateDraft(draft)), nil
}

// Submit validates the draft and moves it to SUBMITTED
func (s *DraftService) Submit(ctx context.Context, draftID uuid.UUID) (*DraftResponse, error) {
	return s.mutate(ctx, draftID, func(draft *quote.QuoteDraft) error {
		return draft.Submit()
	})
}

// Cancel moves a draft to CANCELLED
func (s *DraftService) Cancel(ctx context.Context, draftID uuid.UUID) (*DraftResponse, error) {
	return s.mutate(ctx, draftID, func(draft *quote.QuoteDraft) error {
		return draft.Cancel()
	})
}

// Print renders the draft as the standard devis HTML document
func (s *DraftService) Print(ctx context.Context, draftID uuid.UUID) (string, error) {
	draft, err := s.draftRepo.FindByID(ctx, draftID)
	if err != nil {
		return "", err
	}

	return printing.RenderQuoteDocument(ctx, s.engine, draft)
}

// mutate loads a draft, applies fn and saves it back
func (s *DraftService) mutate(ctx context.Context, draftID uuid.UUID, fn func(*quote.QuoteDraft) error) (*DraftResponse, error) {
	draft, err := s.draftRepo.FindByID(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if err := fn(draft); err != nil {
		return nil, err
	}

	draft.IncrementVersion()
	if err := s.draftRepo.Save(ctx, draft); err != nil {
		return nil, err
	}

	response := ToDraftResponse(draft)
	return &response, nil
}
