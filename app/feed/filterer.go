package feed

import (
	"strings"
)

// Filterer applies the per-feed keyword relevance policy. Feeds with
// strict filtering discard items matching none of the configured
// keywords; unfiltered feeds pass every name-bearing item through.
type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

func (f *Filterer) Run(items []RawItem, feedConfig *Config) []RawItem {
	if !feedConfig.StrictFilter || len(feedConfig.Keywords) == 0 {
		return items
	}

	filtered := make([]RawItem, 0, len(items))
	for _, item := range items {
		if f.matchesKeywords(item, feedConfig.Keywords) {
			filtered = append(filtered, item)
		}
	}

	return filtered
}

// matchesKeywords tests the concatenated name, description and partner
// category text for any keyword substring, case-insensitively.
// Keywords are lowercased at config load.
func (f *Filterer) matchesKeywords(item RawItem, keywords []string) bool {
	text := strings.ToLower(item.Field("name") + " " + item.Field("description") + " " + item.Field("category"))

	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
