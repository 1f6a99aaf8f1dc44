package feed

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rejsermedboern/feedsync/app/catalog"
)

const (
	maxDescriptionLength = 500
	randomIDLength       = 9
)

// Normalizer maps a raw field mapping plus feed configuration into a
// canonical Product, applying defaults, truncation and stock-status
// inference. Field-level data errors never abort an item; they recover
// via default substitution.
type Normalizer struct{}

func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

func (n *Normalizer) Run(item RawItem, feedConfig *Config) catalog.Product {
	name := item.Field("name")
	description := item.Field("description")
	partnerCategory := item.Field("category")

	category := feedConfig.Category
	if category == "" {
		category = catalog.MapCategory(name, description, "")
	}

	merchant := item.Field("merchant")
	if merchant == "" {
		merchant = "Unknown"
	}

	vendorID := item.Field("id")
	if vendorID == "" {
		vendorID = randomToken(randomIDLength)
	}
	id := feedConfig.ID + "-" + vendorID

	return catalog.Product{
		ID:           id,
		Slug:         catalog.Slugify(merchant + "-" + name + "-" + id),
		Name:         name,
		Description:  truncate(description, maxDescriptionLength),
		Price:        parsePrice(item.Field("price")),
		Currency:     "DKK",
		ImageURL:     item.Field("image"),
		AffiliateURL: item.Field("url"),
		Merchant:     merchant,
		Category:     category,
		SubCategory:  catalog.InferSubCategory(partnerCategory, name, description),
		InStock:      inferStock(item.Field("stock")),
		FeedID:       feedConfig.ID,
		UpdatedAt:    time.Now().UTC().Format(time.RFC3339),
	}
}

var nonPriceChars = regexp.MustCompile(`[^0-9.]`)

// parsePrice parses a Danish-locale price string. A comma is the
// decimal separator; when one is present, periods are thousands
// separators and are stripped first, so "1.299,00" parses as 1299.
// Unparseable and negative input defaults to 0.
func parsePrice(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" || strings.HasPrefix(s, "-") {
		return 0
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	s = nonPriceChars.ReplaceAllString(s, "")

	price, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return price
}

// inferStock maps vendor stock text to a boolean. Everything defaults
// to in stock except the known out-of-stock markers.
func inferStock(raw string) bool {
	stock := strings.ToLower(raw)

	if strings.Contains(stock, "out of stock") ||
		stock == "0" ||
		strings.Contains(stock, "udsolgt") ||
		strings.Contains(stock, "ikke") {
		return false
	}
	return true
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomToken(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = base36[rand.Intn(len(base36))]
	}
	return string(b)
}
