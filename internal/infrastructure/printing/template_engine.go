package printing

import (
	"bytes"
	"context"
	"html/template"
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TemplateEngine renders the HTML documents produced by the back office.
// It wraps html/template with the locale-aware formatting helpers the
// devis templates rely on.
type TemplateEngine struct {
	funcMap template.FuncMap
}

// TemplateEngineOption configures the template engine
type TemplateEngineOption func(*TemplateEngine)

// NewTemplateEngine creates a new template engine with default configuration
func NewTemplateEngine(opts ...TemplateEngineOption) *TemplateEngine {
	e := &TemplateEngine{}

	e.funcMap = template.FuncMap{
		// Amount formatting
		"formatAmount":  FormatAmount,
		"amountToWords": amountToWords,
		"formatPercent": formatPercent,

		// Date formatting
		"formatDate":     formatDate,
		"formatDateTime": formatDateTime,

		// String utilities
		"upper":    strings.ToUpper,
		"lower":    strings.ToLower,
		"title":    titleCase,
		"trim":     strings.TrimSpace,
		"truncate": truncate,
		"join":     strings.Join,
		"replace":  strings.ReplaceAll,

		// Arithmetic
		"add": add,
		"sub": sub,
		"mul": mul,

		// Conditional
		"default": defaultFunc,

		// Safe HTML
		"safeHTML": safeHTML,
		"safeCSS":  safeCSS,

		// Misc
		"now":        time.Now,
		"shortUUID":  shortUUID,
		"statusText": statusText,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// RenderString renders a template string with the provided data
func (e *TemplateEngine) RenderString(ctx context.Context, name, content string, data any) (string, error) {
	if content == "" {
		return "", NewRenderError(ErrCodeInvalidTemplate, "template content is empty", nil)
	}

	tmpl, err := template.New(name).Funcs(e.funcMap).Parse(content)
	if err != nil {
		return "", NewRenderError(ErrCodeInvalidTemplate, "failed to parse template", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute template", err)
	}

	return buf.String(), nil
}

// GetFuncMap returns a copy of the template function map
func (e *TemplateEngine) GetFuncMap() template.FuncMap {
	funcMap := make(template.FuncMap, len(e.funcMap))
	maps.Copy(funcMap, e.funcMap)
	return funcMap
}

// =============================================================================
// Template Functions - Amount Formatting
// =============================================================================

// amountToWords spells an amount in French for the legal total line
func amountToWords(v any) string {
	return AmountToFrenchWords(toDecimal(v))
}

// formatPercent renders a percent value already expressed on a 0-100 scale
// Example: 19 -> "19 %"
func formatPercent(v any) string {
	d := toDecimal(v)
	s := d.String()
	if strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ".", ",")
	}
	return s + " %"
}

// =============================================================================
// Template Functions - Date Formatting
// =============================================================================

// formatDate formats a time value as a French date string
// Example: time.Now() -> "15/01/2026"
func formatDate(v any) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// formatDateTime formats a time value with time of day
func formatDateTime(v any) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006 15:04")
}

// =============================================================================
// Template Functions - String Utilities
// =============================================================================

// truncate truncates a string to max runes with a trailing ellipsis
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// titleCase converts a string to title case with French casing rules
func titleCase(s string) string {
	caser := cases.Title(language.French)
	return caser.String(s)
}

// =============================================================================
// Template Functions - Arithmetic
// =============================================================================

func add(a, b any) decimal.Decimal {
	return toDecimal(a).Add(toDecimal(b))
}

func sub(a, b any) decimal.Decimal {
	return toDecimal(a).Sub(toDecimal(b))
}

func mul(a, b any) decimal.Decimal {
	return toDecimal(a).Mul(toDecimal(b))
}

// =============================================================================
// Template Functions - Conditional
// =============================================================================

func defaultFunc(val, def any) any {
	if val == nil {
		return def
	}
	if s, ok := val.(string); ok && s == "" {
		return def
	}
	return val
}

// =============================================================================
// Template Functions - Safe HTML
// =============================================================================
// These bypass the automatic escaping of html/template. Only pass them
// content owned by the application, never customer-provided text.

func safeHTML(s string) template.HTML {
	return template.HTML(s)
}

func safeCSS(s string) template.CSS {
	return template.CSS(s)
}

// =============================================================================
// Template Functions - Misc
// =============================================================================

func shortUUID(id uuid.UUID) string {
	s := id.String()
	if len(s) >= 8 {
		return s[:8]
	}
	return s
}

// statusText converts status codes to the display text used on documents
func statusText(status string) string {
	statusMap := map[string]string{
		"DRAFT":     "Brouillon",
		"SUBMITTED": "Validé",
		"CANCELLED": "Annulé",
	}
	if text, ok := statusMap[status]; ok {
		return text
	}
	return status
}

// =============================================================================
// Helper Functions
// =============================================================================

// toDecimal converts various types to decimal.Decimal
func toDecimal(v any) decimal.Decimal {
	switch val := v.(type) {
	case decimal.Decimal:
		return val
	case *decimal.Decimal:
		if val == nil {
			return decimal.Zero
		}
		return *val
	case int:
		return decimal.NewFromInt(int64(val))
	case int32:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case float32:
		return decimal.NewFromFloat(float64(val))
	case float64:
		return decimal.NewFromFloat(val)
	case string:
		d, err := decimal.NewFromString(val)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// toTime converts various types to time.Time
func toTime(v any) time.Time {
	switch val := v.(type) {
	case time.Time:
		return val
	case *time.Time:
		if val == nil {
			return time.Time{}
		}
		return *val
	case string:
		formats := []string{
			time.RFC3339,
			"2006-01-02 15:04:05",
			"2006-01-02",
		}
		for _, f := range formats {
			if t, err := time.Parse(f, val); err == nil {
				return t
			}
		}
		return time.Time{}
	case int64:
		return time.Unix(val, 0)
	default:
		return time.Time{}
	}
}
