package quote

import (
	"time"

	"github.com/google/uuid"
	"github.com/hydroerp/backend/internal/domain/catalog"
	"github.com/hydroerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DraftStatus represents the status of a quote draft
type DraftStatus string

const (
	DraftStatusDraft     DraftStatus = "DRAFT"
	DraftStatusSubmitted DraftStatus = "SUBMITTED"
	DraftStatusCancelled DraftStatus = "CANCELLED"
)

// IsValid checks if the status is a valid DraftStatus
func (s DraftStatus) IsValid() bool {
	switch s {
	case DraftStatusDraft, DraftStatusSubmitted, DraftStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of DraftStatus
func (s DraftStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s DraftStatus) CanTransitionTo(target DraftStatus) bool {
	switch s {
	case DraftStatusDraft:
		return target == DraftStatusSubmitted || target == DraftStatusCancelled
	case DraftStatusSubmitted, DraftStatusCancelled:
		return false // Terminal states
	}
	return false
}

// QuoteLine represents one row of a quote draft. Its amounts are derived on
// every read from quantity, unit price and tax rate; they are never stored.
type QuoteLine struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey"`
	DraftID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	ArticleID      *uuid.UUID       `gorm:"type:uuid;index"` // nil until an article is chosen
	ArticleCode    string           `gorm:"type:varchar(50)"`
	ArticleName    string           `gorm:"type:varchar(200)"`
	Unit           string           `gorm:"type:varchar(20)"`
	Facet          catalog.FacetTag `gorm:"type:varchar(20)"`
	Quantity       int64            `gorm:"not null;default:0"`
	UnitPrice      decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	TaxRatePercent decimal.Decimal  `gorm:"type:decimal(5,2);not null;default:0"`
	Label          string           `gorm:"type:varchar(255)"` // freeform label override for the printed document
	Position       int              `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LineTotals holds the derived amounts of one line
type LineTotals struct {
	Untaxed decimal.Decimal
	Tax     decimal.Decimal
	Taxed   decimal.Decimal
}

// ComputeLineTotals derives the untaxed, tax and taxed amounts for one line.
// Inputs are treated as already validated; no clamping is performed. Full
// decimal precision is kept so rounding error does not compound across lines;
// rounding happens only at formatting time.
func ComputeLineTotals(quantity int64, unitPrice, taxRatePercent decimal.Decimal) LineTotals {
	untaxed := unitPrice.Mul(decimal.NewFromInt(quantity))
	tax := untaxed.Mul(taxRatePercent).Div(decimal.NewFromInt(100))
	return LineTotals{
		Untaxed: untaxed,
		Tax:     tax,
		Taxed:   untaxed.Add(tax),
	}
}

// Totals returns the derived amounts of the line
func (l *QuoteLine) Totals() LineTotals {
	return ComputeLineTotals(l.Quantity, l.UnitPrice, l.TaxRatePercent)
}

// UntaxedAmount returns quantity * unit price
func (l *QuoteLine) UntaxedAmount() decimal.Decimal {
	return l.Totals().Untaxed
}

// TaxAmount returns the tax portion of the line
func (l *QuoteLine) TaxAmount() decimal.Decimal {
	return l.Totals().Tax
}

// TaxedAmount returns the untaxed amount plus tax
func (l *QuoteLine) TaxedAmount() decimal.Decimal {
	return l.Totals().Taxed
}

// HasArticle reports whether an article has been chosen for the line
func (l *QuoteLine) HasArticle() bool {
	return l.ArticleID != nil
}

// DisplayLabel returns the label override when set, else the article name
func (l *QuoteLine) DisplayLabel() string {
	if l.Label != "" {
		return l.Label
	}
	return l.ArticleName
}

// DocumentTotals is a computed projection over the draft's lines.
// It is derived on demand and never persisted.
type DocumentTotals struct {
	TotalUntaxed decimal.Decimal `json:"total_untaxed"`
	TotalTax     decimal.Decimal `json:"total_tax"`
	TotalTaxed   decimal.Decimal `json:"total_taxed"`
}

// QuoteDraft represents an in-progress quote composed of ordered lines.
// Line order is insertion order and is preserved through add, duplicate and
// remove operations.
type QuoteDraft struct {
	shared.BaseAggregateRoot
	DraftNumber           string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerName          string          `gorm:"type:varchar(200);not null"`
	CustomerRef           string          `gorm:"type:varchar(100)"` // Client file reference from intake
	DefaultTaxRatePercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Lines                 []QuoteLine     `gorm:"foreignKey:DraftID;constraint:OnDelete:CASCADE"`
	Status                DraftStatus     `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Remark                string          `gorm:"type:text"`
	SubmittedAt           *time.Time
	CancelledAt           *time.Time
}

// TableName returns the table name for GORM
func (QuoteDraft) TableName() string {
	return "quote_drafts"
}

// TableName returns the table name for GORM
func (QuoteLine) TableName() string {
	return "quote_lines"
}

// NewQuoteDraft creates a new quote draft. The default tax rate is owned by
// the draft: it is captured once at creation and used whenever an article
// offers no facet-specific rate.
func NewQuoteDraft(draftNumber, customerName string, defaultTaxRatePercent decimal.Decimal) (*QuoteDraft, error) {
	if draftNumber == "" {
		return nil, shared.NewDomainError("INVALID_DRAFT_NUMBER", "Draft number cannot be empty")
	}
	if len(draftNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_DRAFT_NUMBER", "Draft number cannot exceed 50 characters")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if defaultTaxRatePercent.IsNegative() || defaultTaxRatePercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_TAX_RATE", "Default tax rate must be between 0 and 100")
	}

	return &QuoteDraft{
		BaseAggregateRoot:     shared.NewBaseAggregateRoot(),
		DraftNumber:           draftNumber,
		CustomerName:          customerName,
		DefaultTaxRatePercent: defaultTaxRatePercent,
		Lines:                 make([]QuoteLine, 0),
		Status:                DraftStatusDraft,
	}, nil
}

// AddLine appends a new empty line to the draft. The line has no article yet;
// price and tax are filled in when an article is chosen.
// Only allowed in DRAFT status.
func (d *QuoteDraft) AddLine() (*QuoteLine, error) {
	if d.Status != DraftStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add lines to a non-draft quote")
	}

	now := time.Now()
	line := QuoteLine{
		ID:             uuid.New(),
		DraftID:        d.ID,
		Facet:          catalog.FacetNone,
		Quantity:       1,
		UnitPrice:      decimal.Zero,
		TaxRatePercent: d.DefaultTaxRatePercent,
		Position:       len(d.Lines) + 1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	d.Lines = append(d.Lines, line)
	d.UpdatedAt = now

	return &line, nil
}

// ChooseArticle binds an article to a line and resolves its default facet.
// The line snapshots the article's code, name and unit so the printed
// document survives later catalog edits.
func (d *QuoteDraft) ChooseArticle(lineID uuid.UUID, article *catalog.Article) error {
	if d.Status != DraftStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot edit lines of a non-draft quote")
	}
	line, err := d.findLine(lineID)
	if err != nil {
		return err
	}

	resolution := catalog.ResolveDefault(article, d.DefaultTaxRatePercent)

	articleID := article.ID
	line.ArticleID = &articleID
	line.ArticleCode = article.Code
	line.ArticleName = article.Name
	line.Unit = article.Unit
	line.Facet = resolution.Facet
	line.UnitPrice = resolution.UnitPrice
	line.TaxRatePercent = resolution.TaxRatePercent
	line.UpdatedAt = time.Now()
	d.UpdatedAt = line.UpdatedAt

	return nil
}

// ChangeFacet re-resolves a line against an explicitly requested facet of its
// article. Fails with FACET_UNAVAILABLE when the facet carries no price.
func (d *QuoteDraft) ChangeFacet(lineID uuid.UUID, article *catalog.Article, tag catalog.FacetTag) error {
	if d.Status != DraftStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot edit lines of a non-draft quote")
	}
	line, err := d.findLine(lineID)
	if err != nil {
		return err
	}
	if line.ArticleID == nil || *line.ArticleID != article.ID {
		return shared.NewDomainError("ARTICLE_MISMATCH", "Article does not match the line's chosen article")
	}

	resolution, err := catalog.ResolveFacet(article, tag)
	if err != nil {
		return err
	}

	line.Facet = resolution.Facet
	line.UnitPrice = resolution.UnitPrice
	line.TaxRatePercent = resolution.TaxRatePercent
	line.UpdatedAt = time.Now()
	d.UpdatedAt = line.UpdatedAt

	return nil
}

// SetLineQuantity updates a line's quantity. Quantities are whole units;
// zero is tolerated while drafting and rejected by the submission validator.
func (d *QuoteDraft) SetLineQuantity(lineID uuid.UUID, quantity int64) error {
	if d.Status != DraftStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot edit lines of a non-draft quote")
	}
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	line, err := d.findLine(lineID)
	if err != nil {
		return err
	}

	line.Quantity = quantity
	line.UpdatedAt = time.Now()
	d.UpdatedAt = line.UpdatedAt

	return nil
}

// OverrideLineUnitPrice manually overrides the resolved unit price
func (d *QuoteDraft) OverrideLineUnitPrice(lineID uuid.UUID, unitPrice decimal.Decimal) error {
	if d.Status != DraftStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot edit lines of a non-draft quote")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	line, err := d.findLine(lineID)
	if err != nil {
		return err
	}

	line.UnitPrice = unitPrice
	line.UpdatedAt = time.Now()
	d.UpdatedAt = line.UpdatedAt

	return nil
}

// OverrideLineTaxRate manually overrides the resolved tax rate
func (d *QuoteDraft) OverrideLineTaxRate(lineID uuid.UUID, taxRatePercent decimal.Decimal) error {
	if d.Status != DraftStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot edit lines of a non-draft quote")
	}
	if taxRatePercent.IsNegative() || taxRatePercent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_TAX_RATE", "Tax rate must be between 0 and 100")
	}
	line, err := d.findLine(lineID)
	if err != nil {
		return err
	}

	line.TaxRatePercent = taxRatePercent
	line.UpdatedAt = time.Now()
	d.UpdatedAt = line.UpdatedAt

	return nil
}

// SetLineLabel sets the freeform label override of a line
func (d *QuoteDraft) SetLineLabel(lineID uuid.UUID, label string) error {
	if d.Status != DraftStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot edit lines of a non-draft quote")
	}
	line, err := d.findLine(lineID)
	if err != nil {
		return err
	}

	line.Label = label
	line.UpdatedAt = time.Now()
	d.UpdatedAt = line.UpdatedAt

	return nil
}

// DuplicateLine inserts a copy of a line directly after its source.
// The copy gets a fresh identity; relative order of all other lines is kept.
func (d *QuoteDraft) DuplicateLine(lineID uuid.UUID) (*QuoteLine, error) {
	if d.Status != DraftStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot edit lines of a non-draft quote")
	}
	idx := d.lineIndex(lineID)
	if idx < 0 {
		return nil, shared.NewDomainError("LINE_NOT_FOUND", "Quote line not found")
	}

	now := time.Now()
	copied := d.Lines[idx]
	copied.ID = uuid.New()
	copied.CreatedAt = now
	copied.UpdatedAt = now

	d.Lines = append(d.Lines, QuoteLine{})
	copy(d.Lines[idx+2:], d.Lines[idx+1:])
	d.Lines[idx+1] = copied
	d.renumberLines()
	d.UpdatedAt = now

	return &copied, nil
}

// RemoveLine removes a line. Remaining lines keep their relative order and
// positions are recomputed without gaps.
func (d *QuoteDraft) RemoveLine(lineID uuid.UUID) error {
	if d.Status != DraftStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot edit lines of a non-draft quote")
	}
	idx := d.lineIndex(lineID)
	if idx < 0 {
		return shared.NewDomainError("LINE_NOT_FOUND", "Quote line not found")
	}

	d.Lines = append(d.Lines[:idx], d.Lines[idx+1:]...)
	d.renumberLines()
	d.UpdatedAt = time.Now()

	return nil
}

// Totals folds all lines into document-level totals. Every line with a
// resolved price participates; amounts are accumulated at full precision.
func (d *QuoteDraft) Totals() DocumentTotals {
	totalUntaxed := decimal.Zero
	totalTax := decimal.Zero

	for i := range d.Lines {
		lineTotals := d.Lines[i].Totals()
		totalUntaxed = totalUntaxed.Add(lineTotals.Untaxed)
		totalTax = totalTax.Add(lineTotals.Tax)
	}

	return DocumentTotals{
		TotalUntaxed: totalUntaxed,
		TotalTax:     totalTax,
		TotalTaxed:   totalUntaxed.Add(totalTax),
	}
}

// FindDuplicateArticles reports article ids referenced by more than one line,
// mapped to the indexes of every involved line. Lines without an article
// never count as duplicates of each other.
func FindDuplicateArticles(lines []QuoteLine) map[uuid.UUID][]int {
	byArticle := make(map[uuid.UUID][]int)
	for i := range lines {
		if lines[i].ArticleID == nil {
			continue
		}
		byArticle[*lines[i].ArticleID] = append(byArticle[*lines[i].ArticleID], i)
	}

	duplicates := make(map[uuid.UUID][]int)
	for articleID, indexes := range byArticle {
		if len(indexes) > 1 {
			duplicates[articleID] = indexes
		}
	}
	return duplicates
}

// DuplicateArticleIDs returns the set of article ids repeated across lines
func (d *QuoteDraft) DuplicateArticleIDs() []uuid.UUID {
	duplicates := FindDuplicateArticles(d.Lines)
	ids := make([]uuid.UUID, 0, len(duplicates))
	for i := range d.Lines {
		if d.Lines[i].ArticleID == nil {
			continue
		}
		if indexes, ok := duplicates[*d.Lines[i].ArticleID]; ok && indexes[0] == i {
			ids = append(ids, *d.Lines[i].ArticleID)
		}
	}
	return ids
}

// Submit marks the draft as submitted. Submission is gated by the draft
// validator: every violation must be resolved first.
func (d *QuoteDraft) Submit() error {
	if !d.Status.CanTransitionTo(DraftStatusSubmitted) {
		return shared.NewDomainError("INVALID_STATE", "Only a draft quote can be submitted")
	}
	if violations := ValidateDraft(d); len(violations) > 0 {
		return shared.NewDomainError("DRAFT_NOT_SUBMITTABLE", "Draft has validation violations")
	}

	now := time.Now()
	d.Status = DraftStatusSubmitted
	d.SubmittedAt = &now
	d.UpdatedAt = now
	d.IncrementVersion()

	return nil
}

// Cancel marks the draft as cancelled
func (d *QuoteDraft) Cancel() error {
	if !d.Status.CanTransitionTo(DraftStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", "Only a draft quote can be cancelled")
	}

	now := time.Now()
	d.Status = DraftStatusCancelled
	d.CancelledAt = &now
	d.UpdatedAt = now
	d.IncrementVersion()

	return nil
}

// SetRemark sets the draft remark
func (d *QuoteDraft) SetRemark(remark string) {
	d.Remark = remark
	d.UpdatedAt = time.Now()
}

func (d *QuoteDraft) lineIndex(lineID uuid.UUID) int {
	for i := range d.Lines {
		if d.Lines[i].ID == lineID {
			return i
		}
	}
	return -1
}

func (d *QuoteDraft) findLine(lineID uuid.UUID) (*QuoteLine, error) {
	idx := d.lineIndex(lineID)
	if idx < 0 {
		return nil, shared.NewDomainError("LINE_NOT_FOUND", "Quote line not found")
	}
	return &d.Lines[idx], nil
}

// FindLine returns the line with the given ID
func (d *QuoteDraft) FindLine(lineID uuid.UUID) (*QuoteLine, error) {
	return d.findLine(lineID)
}

func (d *QuoteDraft) renumberLines() {
	for i := range d.Lines {
		d.Lines[i].Position = i + 1
	}
}
