package catalog

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NewCollator returns a Danish collator for ordering product names and
// subcategories. Collators carry internal buffers and are not safe for
// concurrent use, so callers create one per sort.
func NewCollator() *collate.Collator {
	return collate.New(language.Danish)
}
