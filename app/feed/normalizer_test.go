package feed

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/rejsermedboern/feedsync/app/catalog"
)

func TestNormalizer_Run(t *testing.T) {
	normalizer := NewNormalizer()
	feedConfig := &Config{ID: "3995", Name: "adventure-pro"}

	item := RawItem{
		"produktid":    "12345",
		"produktnavn":  "Kabinekuffert 55cm",
		"beskrivelse":  "Letvægts hardcase med 4 hjul",
		"kategorinavn": "Bagage",
		"nypris":       "1.299,00",
		"billedurl":    "https://example.com/img.jpg",
		"vareurl":      "https://example.com/p/12345",
		"forhandler":   "Adventure Pro",
		"lagerantal":   "5",
	}

	product := normalizer.Run(item, feedConfig)

	if product.ID != "3995-12345" {
		t.Errorf("Unexpected id: %q", product.ID)
	}
	if product.Slug != "adventure-pro-kabinekuffert-55cm-3995-12345" {
		t.Errorf("Unexpected slug: %q", product.Slug)
	}
	if product.Price != 1299.0 {
		t.Errorf("Expected price 1299.0, got %v", product.Price)
	}
	if product.Currency != "DKK" {
		t.Errorf("Expected currency DKK, got %q", product.Currency)
	}
	if product.Category != catalog.CategoryPacking {
		t.Errorf("Expected category pakkelister, got %q", product.Category)
	}
	if !product.InStock {
		t.Error("Expected product to be in stock")
	}
	if product.FeedID != "3995" {
		t.Errorf("Unexpected feedId: %q", product.FeedID)
	}
	if product.UpdatedAt == "" {
		t.Error("Expected updatedAt to be set")
	}
}

func TestNormalizer_FeedCategoryOverridesClassifier(t *testing.T) {
	normalizer := NewNormalizer()
	feedConfig := &Config{ID: "3685", Category: catalog.CategoryActivities}

	// The name would classify as pakkelister, but the feed default wins
	product := normalizer.Run(RawItem{"produktnavn": "Kuffert escape"}, feedConfig)
	if product.Category != catalog.CategoryActivities {
		t.Errorf("Expected feed category aktiviteter, got %q", product.Category)
	}
}

func TestNormalizer_MerchantDefault(t *testing.T) {
	normalizer := NewNormalizer()
	feedConfig := &Config{ID: "3995"}

	product := normalizer.Run(RawItem{"produktnavn": "Telt"}, feedConfig)
	if product.Merchant != "Unknown" {
		t.Errorf("Expected merchant 'Unknown', got %q", product.Merchant)
	}
}

func TestNormalizer_RandomIDWhenVendorIDMissing(t *testing.T) {
	normalizer := NewNormalizer()
	feedConfig := &Config{ID: "3995"}

	product := normalizer.Run(RawItem{"produktnavn": "Telt"}, feedConfig)

	if !strings.HasPrefix(product.ID, "3995-") {
		t.Fatalf("Expected feed-prefixed id, got %q", product.ID)
	}
	suffix := strings.TrimPrefix(product.ID, "3995-")
	if len(suffix) != randomIDLength {
		t.Errorf("Expected %d-character random suffix, got %q", randomIDLength, suffix)
	}
}

func TestNormalizer_DescriptionTruncation(t *testing.T) {
	normalizer := NewNormalizer()
	feedConfig := &Config{ID: "3995"}

	// Multi-byte runes must count as one character each
	long := strings.Repeat("ø", maxDescriptionLength+100)
	product := normalizer.Run(RawItem{"produktnavn": "Telt", "beskrivelse": long}, feedConfig)

	if utf8.RuneCountInString(product.Description) != maxDescriptionLength {
		t.Errorf("Expected %d runes, got %d", maxDescriptionLength, utf8.RuneCountInString(product.Description))
	}
	if !utf8.ValidString(product.Description) {
		t.Error("Truncation produced invalid UTF-8")
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"1.299,00", 1299.0},
		{"249,50", 249.5},
		{"100", 100.0},
		{"99.95", 99.95},
		{"1.299", 1.299}, // without a comma the period is a decimal separator
		{"450 kr", 450.0},
		{"DKK 450,00", 450.0},
		{"", 0},
		{"gratis", 0},
		{"-50", 0},
		{"-1.299,00", 0},
	}

	for _, tt := range tests {
		if got := parsePrice(tt.input); got != tt.expected {
			t.Errorf("parsePrice(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}

func TestInferStock(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"", true},
		{"5", true},
		{"in stock", true},
		{"på lager", true},
		{"0", false},
		{"Udsolgt", false},
		{"Out of Stock", false},
		{"ikke på lager", false},
		{"10", true},
	}

	for _, tt := range tests {
		if got := inferStock(tt.input); got != tt.expected {
			t.Errorf("inferStock(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}
