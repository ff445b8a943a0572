package catalog

import (
	"github.com/hydroerp/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Resolution is the outcome of deriving a concrete unit price and tax rate
// for an article and a (possibly implicit) facet choice.
type Resolution struct {
	Facet          FacetTag
	UnitPrice      decimal.Decimal
	TaxRatePercent decimal.Decimal
}

// ResolveDefault applies the default-facet policy when no facet was requested.
// The priority order is strict, first match wins:
//
//  1. SUPPLY and INSTALL both priced -> COMBINED: summed price, SUPPLY's tax rate
//  2. SUPPLY
//  3. INSTALL
//  4. SERVICE
//  5. BENEFIT
//  6. BOND
//  7. nothing priced -> no facet, zero price, the caller-supplied default tax rate
//
// The COMBINED case deliberately takes SUPPLY's rate, not INSTALL's and not an
// average. Resolution is pure: the same article and catalog data always yield
// the same result.
func ResolveDefault(a *Article, defaultTaxRate decimal.Decimal) Resolution {
	if a.Facets.Has(FacetSupply) && a.Facets.Has(FacetInstall) {
		supply := a.Facets[FacetSupply]
		install := a.Facets[FacetInstall]
		return Resolution{
			Facet:          FacetCombined,
			UnitPrice:      supply.UnitPrice.Add(install.UnitPrice),
			TaxRatePercent: supply.TaxRatePercent,
		}
	}

	for _, tag := range storedFacetOrder {
		if price, ok := a.Facets[tag]; ok {
			return Resolution{
				Facet:          tag,
				UnitPrice:      price.UnitPrice,
				TaxRatePercent: price.TaxRatePercent,
			}
		}
	}

	return Resolution{
		Facet:          FacetNone,
		UnitPrice:      decimal.Zero,
		TaxRatePercent: defaultTaxRate,
	}
}

// ResolveFacet resolves an explicitly requested facet. It fails with
// ErrFacetUnavailable when the facet carries no price on the article, or when
// COMBINED is requested and either SUPPLY or INSTALL is missing; it never
// computes a partial sum.
func ResolveFacet(a *Article, tag FacetTag) (Resolution, error) {
	if !tag.IsValid() {
		return Resolution{}, shared.NewDomainError("INVALID_FACET", "Unknown facet tag: "+tag.String())
	}

	if tag == FacetCombined {
		if !a.Facets.Has(FacetSupply) || !a.Facets.Has(FacetInstall) {
			return Resolution{}, shared.ErrFacetUnavailable
		}
		supply := a.Facets[FacetSupply]
		install := a.Facets[FacetInstall]
		return Resolution{
			Facet:          FacetCombined,
			UnitPrice:      supply.UnitPrice.Add(install.UnitPrice),
			TaxRatePercent: supply.TaxRatePercent,
		}, nil
	}

	price, ok := a.Facets[tag]
	if !ok {
		return Resolution{}, shared.ErrFacetUnavailable
	}
	return Resolution{
		Facet:          tag,
		UnitPrice:      price.UnitPrice,
		TaxRatePercent: price.TaxRatePercent,
	}, nil
}
