package catalog

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// The classifier is an ordered first-match-wins rule list, not a scored
// model. Rule order is load-bearing: the pakkelister group is tested
// before the broader groups, and reordering changes results.

const maxSubCategoryLength = 40

type categoryRule struct {
	pattern  *regexp.Regexp
	category Category
}

var categoryRules = []categoryRule{
	{regexp.MustCompile(`kuffert|taske|rygsæk|bagage|packing|pakke|nakkepude|rejsepude|øjenmaske|sovemaske|adaptor|powerbank|toilettaske`), CategoryPacking},
	{regexp.MustCompile(`escape|byjagt|oplevelse|tur|camping|outdoor|friluft|telt|vandre|kamera|action cam`), CategoryActivities},
	{regexp.MustCompile(`hotel|resort|overnatning`), CategoryHotels},
	{regexp.MustCompile(`fly|lufthavn|flight|boarding`), CategoryFlights},
	{regexp.MustCompile(`ferie|destination|rejsemål`), CategoryDestinations},
}

type subCategoryRule struct {
	pattern *regexp.Regexp
	label   string
}

var subCategoryRules = []subCategoryRule{
	// Bagage
	{regexp.MustCompile(`kuffert|trolley|kabine`), "Kufferter"},
	{regexp.MustCompile(`rygsæk|backpack`), "Rygsække"},
	{regexp.MustCompile(`taske|bag`), "Tasker"},
	// Rejsekomfort
	{regexp.MustCompile(`nakkepude|rejsepude|travel pillow`), "Rejsepuder"},
	{regexp.MustCompile(`øjenmaske|sovemaske|eye mask`), "Sovemasker"},
	{regexp.MustCompile(`ørepropper|ear plug`), "Ørepropper"},
	// Elektronik
	{regexp.MustCompile(`powerbank|oplader`), "Powerbanks"},
	{regexp.MustCompile(`adaptor|adapter|stik`), "Adaptorer"},
	{regexp.MustCompile(`kamera|camera`), "Kameraer"},
	// Outdoor
	{regexp.MustCompile(`telt|tent`), "Telte"},
	{regexp.MustCompile(`sovepose|sleeping bag`), "Soveposer"},
	{regexp.MustCompile(`vandre|hiking`), "Vandreudstyr"},
	// Oplevelser
	{regexp.MustCompile(`escape|byjagt|treasure`), "Oplevelser"},
	// Organisering
	{regexp.MustCompile(`packing cube|pakkepose`), "Pakkeposer"},
	{regexp.MustCompile(`toilettaske|wash bag`), "Toilettasker"},
}

var whitespace = regexp.MustCompile(`\s+`)

func normalizeText(s string) string {
	return strings.TrimSpace(whitespace.ReplaceAllString(strings.ToLower(s), " "))
}

// MapCategory infers the coarse category from product name and
// description. When no rule matches, the feed's default category is
// returned if valid, otherwise CategoryOther.
func MapCategory(name, description string, defaultCategory Category) Category {
	text := normalizeText(name + " " + description)

	for _, rule := range categoryRules {
		if rule.pattern.MatchString(text) {
			return rule.category
		}
	}

	if defaultCategory != "" && defaultCategory.Valid() {
		return defaultCategory
	}
	return CategoryOther
}

// InferSubCategory infers the fine-grained refinement from the
// partner-supplied category text plus name and description. When no
// rule matches, the raw partner category string is passed through
// verbatim if non-empty and at most 40 characters.
func InferSubCategory(partnerCategory, name, description string) string {
	text := normalizeText(partnerCategory + " " + name + " " + description)

	for _, rule := range subCategoryRules {
		if rule.pattern.MatchString(text) {
			return rule.label
		}
	}

	pc := strings.TrimSpace(partnerCategory)
	if pc != "" && utf8.RuneCountInString(pc) <= maxSubCategoryLength {
		return pc
	}

	return ""
}
