// Package plan holds the static plan-limits catalog. The catalog is
// configuration, loaded once at process start and immutable afterwards;
// concurrent readers rely on that immutability.
package plan

// Unlimited marks a quota with no cap.
const Unlimited = -1

// Feature flag names shared between plans and callers.
const (
	FeatureCustomDomain = "custom_domain"
	FeatureGiftCards    = "gift_cards"
	FeatureAnalytics    = "analytics"
	FeatureAdFree       = "ad_free"
	FeatureMaxImages    = "max_images"
)

// Limits describes the quantity caps and feature flags of one plan tier.
type Limits struct {
	MaxStores           int                `json:"max_stores"`
	MaxProductsPerStore int                `json:"max_products_per_store"`
	Flags               map[string]float64 `json:"flags,omitempty"`
}

// HasFeature reports whether a named flag is enabled. Boolean flags are
// stored as 1/0; numeric flags count as enabled when positive.
func (l Limits) HasFeature(name string) bool {
	if l.Flags == nil {
		return false
	}
	return l.Flags[name] > 0
}

// Catalog maps a plan type to its limits. A nil result means the plan type
// is unrecognized; callers treat that the same as having no plan.
type Catalog map[string]Limits

// Lookup returns the limits for a plan type, or nil when unknown.
func (c Catalog) Lookup(planType string) *Limits {
	l, ok := c[planType]
	if !ok {
		return nil
	}
	return &l
}

// Default is the built-in plan table for the platform tiers.
func Default() Catalog {
	return Catalog{
		"basic": {
			MaxStores:           1,
			MaxProductsPerStore: 20,
			Flags: map[string]float64{
				FeatureMaxImages: 3,
			},
		},
		"growth": {
			MaxStores:           3,
			MaxProductsPerStore: 100,
			Flags: map[string]float64{
				FeatureGiftCards: 1,
				FeatureAnalytics: 1,
				FeatureMaxImages: 8,
			},
		},
		"pro": {
			MaxStores:           10,
			MaxProductsPerStore: Unlimited,
			Flags: map[string]float64{
				FeatureCustomDomain: 1,
				FeatureGiftCards:    1,
				FeatureAnalytics:    1,
				FeatureAdFree:       1,
				FeatureMaxImages:    20,
			},
		},
	}
}
