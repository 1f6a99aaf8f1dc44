package feed

import (
	"github.com/rejsermedboern/feedsync/app/catalog"
)

// Config describes one Partner-ads feed. Loaded from one YAML file per
// feed; immutable for the life of a run.
type Config struct {
	Name         string           // Derived from filename (without .yml extension)
	ID           string           `yaml:"id"`
	BannerID     string           `yaml:"banner_id"`
	URL          string           `yaml:"url"`
	Category     catalog.Category `yaml:"category"`      // optional default, overrides classifier inference
	Keywords     []string         `yaml:"keywords"`      // lowercased at load
	StrictFilter bool             `yaml:"strict_filter"` // discard items matching no keyword
}

// RawItem is one product element as parsed from the XML payload, keyed
// by the vendor's own element names. It exists only within the parsing
// stage and is never persisted.
type RawItem map[string]string

// fieldSynonyms maps each logical product field to the vendor key
// variants observed across the Partner-ads feeds, in lookup priority
// order. New vendor schema variants are a data change here, not a code
// change.
var fieldSynonyms = map[string][]string{
	"name":        {"produktnavn", "navn", "name"},
	"description": {"beskrivelse", "LangBeskrivelse", "description", "produktbeskrivelse"},
	"category":    {"kategorinavn", "kategori", "category"},
	"price":       {"nypris", "NyPris", "pris", "price"},
	"image":       {"billedurl", "LilleBilledeUrl", "BilledUrl", "image", "billede"},
	"url":         {"vareurl", "LandingsUrl", "url", "link"},
	"merchant":    {"forhandler", "varebrand", "brand"},
	"stock":       {"lagerantal", "LagerStatus", "stock"},
	"id":          {"produktid", "VareId", "id"},
}

// Field resolves a logical field to the first present, non-empty vendor
// value.
func (ri RawItem) Field(logical string) string {
	for _, key := range fieldSynonyms[logical] {
		if v, ok := ri[key]; ok && v != "" {
			return v
		}
	}
	return ""
}

// HasName reports whether the item carries any of the name synonyms.
// Items without a name are dropped at the parsing stage.
func (ri RawItem) HasName() bool {
	return ri.Field("name") != ""
}
