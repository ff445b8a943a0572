package catalog

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// FacetTag identifies one of the price bases an article may expose
type FacetTag string

const (
	FacetSupply  FacetTag = "SUPPLY"
	FacetInstall FacetTag = "INSTALL"
	FacetService FacetTag = "SERVICE"
	FacetBenefit FacetTag = "BENEFIT"
	FacetBond    FacetTag = "BOND"

	// FacetCombined is derived from SUPPLY + INSTALL and is never stored on an article
	FacetCombined FacetTag = "COMBINED"

	// FacetNone marks a line whose article offers no priced facet
	FacetNone FacetTag = ""
)

// storedFacetOrder is the priority order used by the default-facet policy
var storedFacetOrder = []FacetTag{FacetSupply, FacetInstall, FacetService, FacetBenefit, FacetBond}

// IsValid checks if the tag is a known facet (including the derived COMBINED)
func (t FacetTag) IsValid() bool {
	switch t {
	case FacetSupply, FacetInstall, FacetService, FacetBenefit, FacetBond, FacetCombined:
		return true
	}
	return false
}

// IsStorable checks if the tag may carry a price on an article.
// COMBINED is derived, never stored.
func (t FacetTag) IsStorable() bool {
	switch t {
	case FacetSupply, FacetInstall, FacetService, FacetBenefit, FacetBond:
		return true
	}
	return false
}

// String returns the string representation of the tag
func (t FacetTag) String() string {
	return string(t)
}

// FacetPrice holds the unit price and tax rate for one facet of an article
type FacetPrice struct {
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
}

// FacetPrices maps facet tags to their prices. A facet is present only if
// its price is defined; absence is not zero.
type FacetPrices map[FacetTag]FacetPrice

// Has reports whether the facet carries a defined price
func (f FacetPrices) Has(tag FacetTag) bool {
	_, ok := f[tag]
	return ok
}

// Value implements driver.Valuer for JSONB storage
func (f FacetPrices) Value() (driver.Value, error) {
	if f == nil {
		return "{}", nil
	}
	data, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner for JSONB retrieval
func (f *FacetPrices) Scan(value any) error {
	if value == nil {
		*f = FacetPrices{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into FacetPrices", value)
	}

	if len(data) == 0 {
		*f = FacetPrices{}
		return nil
	}
	return json.Unmarshal(data, f)
}
