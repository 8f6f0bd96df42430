package models

// SortOrder selects how a ride listing is ordered.
type SortOrder string

const (
	SortDateDesc  SortOrder = "dateDesc"
	SortDateAsc   SortOrder = "dateAsc"
	SortPriceDesc SortOrder = "priceDesc"
	SortPriceAsc  SortOrder = "priceAsc"
)

// FilterAll matches any status or type.
const FilterAll = "all"

// Filters drives the ride listing pipeline: substring search, exact
// status/type restriction, then ordering.
type Filters struct {
	Search string
	Status string
	Type   string
	SortBy SortOrder
}

// DefaultFilters mirrors the listing's initial state: everything visible,
// newest scheduled rides first.
func DefaultFilters() Filters {
	return Filters{Status: FilterAll, Type: FilterAll, SortBy: SortDateDesc}
}
