package types

// Regions is the fixed set of target markets
var Regions = []string{
	"Asia",
	"Europe",
	"United States",
	"Middle East",
	"New Zealand",
	"China",
	"Global",
}

// Promotions is the fixed set of campaign themes
var Promotions = []string{
	"New Year Promotion",
	"Chinese New Year Promotion",
	"Summer Promotion",
	"Winter Promotion",
	"Valentine’s Promotion",
	"Autumn Sale",
	"Black Friday",
	"Flash Deal",
	"Loyalty Exclusive",
}

// DefaultRegion is preselected when nothing else is chosen
const DefaultRegion = "Global"

// DefaultPromotion returns the first catalog promotion
func DefaultPromotion() string {
	return Promotions[0]
}

// IsKnownRegion reports whether region is part of the catalog
func IsKnownRegion(region string) bool {
	for _, r := range Regions {
		if r == region {
			return true
		}
	}
	return false
}

// IsKnownPromotion reports whether promotion is part of the catalog
func IsKnownPromotion(promotion string) bool {
	for _, p := range Promotions {
		if p == promotion {
			return true
		}
	}
	return false
}
