package catalog

// Category is the coarse level of the two-level product taxonomy.
type Category string

const (
	CategoryDestinations Category = "feriedestinationer"
	CategoryFlights      Category = "flyrejser"
	CategoryHotels       Category = "hoteller"
	CategoryPacking      Category = "pakkelister"
	CategoryActivities   Category = "aktiviteter"
	CategoryOther        Category = "andet"
)

// Valid reports whether c is one of the known taxonomy slugs.
func (c Category) Valid() bool {
	switch c {
	case CategoryDestinations, CategoryFlights, CategoryHotels,
		CategoryPacking, CategoryActivities, CategoryOther:
		return true
	}
	return false
}

// Product is the canonical, persisted unit produced by the sync pipeline.
// JSON field names match the cache file consumed by the presentation layer.
type Product struct {
	ID           string   `json:"id"`
	Slug         string   `json:"slug"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Currency     string   `json:"currency"`
	ImageURL     string   `json:"imageUrl"`
	AffiliateURL string   `json:"affiliateUrl"`
	Merchant     string   `json:"merchant"`
	Category     Category `json:"category"`
	SubCategory  string   `json:"subCategory,omitempty"`
	InStock      bool     `json:"inStock"`
	FeedID       string   `json:"feedId"`
	UpdatedAt    string   `json:"updatedAt"`
}

// Snapshot is the persisted cache document, the sole data interface
// between the sync pipeline and the presentation layer.
type Snapshot struct {
	Products    []Product `json:"products"`
	LastUpdated string    `json:"lastUpdated"`
}

// CategoryInfo carries display metadata for one taxonomy category.
type CategoryInfo struct {
	Slug        Category `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
}

// Categories lists the taxonomy in display order.
var Categories = []CategoryInfo{
	{
		Slug:        CategoryDestinations,
		Name:        "Feriedestinationer",
		Description: "Find de bedste rejsemål til familier med børn. Strand, storby, naturoplevelser og forlystelsesparker.",
		Keywords:    []string{"ferie", "destination", "rejsemål", "strand", "storby", "natur"},
	},
	{
		Slug:        CategoryFlights,
		Name:        "Flyrejser med børn",
		Description: "Alt om flyrejser med børn – tips til lange flyture, baby i fly, og hvordan I overlever rejsen.",
		Keywords:    []string{"flyrejse", "fly", "flytur", "lufthavn", "baby fly"},
	},
	{
		Slug:        CategoryHotels,
		Name:        "Børnevenlige hoteller",
		Description: "Find de bedste børnevenlige hoteller og resorts. Familieværelser, all-inclusive og aktiviteter for børn.",
		Keywords:    []string{"hotel", "resort", "børnevenlig", "familiehotel", "all-inclusive"},
	},
	{
		Slug:        CategoryPacking,
		Name:        "Pakkelister",
		Description: "Komplette pakkelister til rejser med børn i alle aldre. Aldrig glem det vigtige igen.",
		Keywords:    []string{"pakkeliste", "pakning", "rejseudstyr", "babyudstyr"},
	},
	{
		Slug:        CategoryActivities,
		Name:        "Aktiviteter & oplevelser",
		Description: "Spændende aktiviteter og oplevelser for hele familien. Forlystelsesparker, dyreparker og eventyr.",
		Keywords:    []string{"aktivitet", "oplevelse", "forlystelsespark", "dyrepark", "museum"},
	},
	{
		Slug:        CategoryOther,
		Name:        "Øvrige rejsetips",
		Description: "Andre gode råd til rejser med børn – forsikring, mad, transport og praktiske tips.",
		Keywords:    []string{"rejsetips", "praktisk", "forsikring"},
	},
}

// GetCategoryInfo returns the display metadata for a taxonomy slug.
func GetCategoryInfo(slug Category) *CategoryInfo {
	for i := range Categories {
		if Categories[i].Slug == slug {
			return &Categories[i]
		}
	}
	return nil
}
