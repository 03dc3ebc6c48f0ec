package xtream

import "strconv"

// AccountInfo is the user_info section of a successful login. Connection
// counts are passed through verbatim as the panel reported them; ExpDate is
// the raw expiry value ("" when absent); interpretation is the prober's
// policy, not the client's.
type AccountInfo struct {
	ExpDate        string
	ActiveCons     string
	MaxConnections string
}

// Item is one catalog entry from a list action. Panels return stream and
// series IDs as either numbers or strings, so SeriesID stays untyped until
// someone asks for it.
type Item struct {
	Name     string `json:"name"`
	SeriesID any    `json:"series_id"`
}

// SeriesIDString returns the series ID in string form, or "" when absent.
func (it Item) SeriesIDString() string {
	return anyToString(it.SeriesID, "")
}

// Category is one entry from a category-listing action.
type Category struct {
	CategoryName string `json:"category_name"`
}

// Episode is one entry in a series' episodes-by-season mapping.
type Episode struct {
	Title string `json:"title"`
}

func anyToString(v any, fallback string) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatInt(int64(x), 10)
	}
	return fallback
}
