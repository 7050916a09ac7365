// Package catalog defines the fixed enumerations the intake form draws from:
// brands, product categories, booth sections, salespeople, and contact
// methods. The sets are closed on purpose — segmentation buckets and heatmap
// zones are pre-seeded from them, so adding an entry here is the single place
// a new identifier enters the system.
package catalog

// Brand identifies one of the distributed brands.
type Brand string

const (
	BrandBeri       Brand = "beri"
	BrandRaz        Brand = "raz"
	BrandLostMary   Brand = "lost-mary"
	BrandDinnerLady Brand = "dinner-lady"
	BrandOneTank    Brand = "one-tank"
	BrandRYL        Brand = "ryl"
)

// BrandInfo carries display metadata for a brand.
type BrandInfo struct {
	ID    Brand  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

var brands = []BrandInfo{
	{ID: BrandBeri, Name: "Beri", Color: "#6366f1"},
	{ID: BrandRaz, Name: "Raz", Color: "#ec4899"},
	{ID: BrandLostMary, Name: "Lost Mary", Color: "#8b5cf6"},
	{ID: BrandDinnerLady, Name: "Dinner Lady", Color: "#f59e0b"},
	{ID: BrandOneTank, Name: "One Tank", Color: "#10b981"},
	{ID: BrandRYL, Name: "RYL", Color: "#ef4444"},
}

// Brands returns the full brand catalog in display order.
func Brands() []BrandInfo {
	out := make([]BrandInfo, len(brands))
	copy(out, brands)
	return out
}

// BrandIDs returns every brand identifier in catalog order.
func BrandIDs() []Brand {
	ids := make([]Brand, 0, len(brands))
	for _, b := range brands {
		ids = append(ids, b.ID)
	}
	return ids
}

// Valid reports whether the brand is part of the catalog.
func (b Brand) Valid() bool {
	for _, info := range brands {
		if info.ID == b {
			return true
		}
	}
	return false
}

// Name returns the display name, or the raw id for unknown brands.
func (b Brand) Name() string {
	for _, info := range brands {
		if info.ID == b {
			return info.Name
		}
	}
	return string(b)
}

// Category identifies one of the product categories.
type Category string

const (
	CategoryVapes       Category = "vapes"
	CategoryDevices     Category = "devices"
	CategoryVapeJuice   Category = "vape-juice"
	CategorySmokeShop   Category = "smoke-shop"
	CategoryHemp        Category = "hemp"
	CategoryConvenience Category = "convenience"
)

// CategoryInfo carries display metadata for a category.
type CategoryInfo struct {
	ID          Category `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
}

var categories = []CategoryInfo{
	{ID: CategoryVapes, Name: "Vapes", Description: "Disposable and rechargeable vape devices"},
	{ID: CategoryDevices, Name: "Devices", Description: "Mods, pods, and starter kits"},
	{ID: CategoryVapeJuice, Name: "Vape Juice", Description: "E-liquids and nicotine salts"},
	{ID: CategorySmokeShop, Name: "Smoke Shop Items", Description: "Papers, pipes, and accessories"},
	{ID: CategoryHemp, Name: "Hemp Products", Description: "CBD, Delta-8, and hemp extracts"},
	{ID: CategoryConvenience, Name: "Convenience Store Items", Description: "Snacks, drinks, and essentials"},
}

// Categories returns the full category catalog in display order.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categories))
	copy(out, categories)
	return out
}

// CategoryIDs returns every category identifier in catalog order.
func CategoryIDs() []Category {
	ids := make([]Category, 0, len(categories))
	for _, c := range categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// Valid reports whether the category is part of the catalog.
func (c Category) Valid() bool {
	for _, info := range categories {
		if info.ID == c {
			return true
		}
	}
	return false
}

// Name returns the display name, or the raw id for unknown categories.
func (c Category) Name() string {
	for _, info := range categories {
		if info.ID == c {
			return info.Name
		}
	}
	return string(c)
}

// BoothSection identifies a physical zone of the booth.
type BoothSection string

const (
	SectionBeriDisplay       BoothSection = "beri-display"
	SectionDinnerLadyDisplay BoothSection = "dinner-lady-display"
	SectionLostMaryDisplay   BoothSection = "lost-mary-display"
	SectionOneTankDisplay    BoothSection = "one-tank-display"
	SectionRazDisplay        BoothSection = "raz-display"
	SectionRYLDisplay        BoothSection = "ryl-display"
)

// SectionInfo carries display metadata and the fixed floor-plan geometry
// (percent-based rectangles) used by the heatmap overlay.
type SectionInfo struct {
	ID     BoothSection `json:"id"`
	Name   string       `json:"name"`
	X      int          `json:"x"`
	Y      int          `json:"y"`
	Width  int          `json:"width"`
	Height int          `json:"height"`
}

var sections = []SectionInfo{
	{ID: SectionBeriDisplay, Name: "Beri Display", X: 5, Y: 5, Width: 28, Height: 30},
	{ID: SectionDinnerLadyDisplay, Name: "Dinner Lady Display", X: 5, Y: 40, Width: 28, Height: 30},
	{ID: SectionLostMaryDisplay, Name: "Lost Mary Display", X: 67, Y: 5, Width: 28, Height: 30},
	{ID: SectionOneTankDisplay, Name: "One Tank Display", X: 36, Y: 40, Width: 28, Height: 30},
	{ID: SectionRazDisplay, Name: "Raz Display", X: 36, Y: 5, Width: 28, Height: 30},
	{ID: SectionRYLDisplay, Name: "RYL Display", X: 67, Y: 40, Width: 28, Height: 30},
}

// Sections returns the full booth section catalog in display order.
func Sections() []SectionInfo {
	out := make([]SectionInfo, len(sections))
	copy(out, sections)
	return out
}

// Valid reports whether the section is part of the catalog.
func (s BoothSection) Valid() bool {
	for _, info := range sections {
		if info.ID == s {
			return true
		}
	}
	return false
}

// Name returns the display name, or the raw id for unknown sections.
func (s BoothSection) Name() string {
	for _, info := range sections {
		if info.ID == s {
			return info.Name
		}
	}
	return string(s)
}

// ContactMethod identifies a preferred follow-up channel.
type ContactMethod string

const (
	ContactEmail ContactMethod = "email"
	ContactPhone ContactMethod = "phone"
	ContactText  ContactMethod = "text"
	ContactAny   ContactMethod = "all"
)

// ContactMethodInfo carries display metadata for a contact method.
type ContactMethodInfo struct {
	ID   ContactMethod `json:"id"`
	Name string        `json:"name"`
}

var contactMethods = []ContactMethodInfo{
	{ID: ContactEmail, Name: "Email"},
	{ID: ContactPhone, Name: "Phone Call"},
	{ID: ContactText, Name: "Text Message"},
	{ID: ContactAny, Name: "Any Method"},
}

// ContactMethods returns the contact method catalog in display order.
func ContactMethods() []ContactMethodInfo {
	out := make([]ContactMethodInfo, len(contactMethods))
	copy(out, contactMethods)
	return out
}

// Valid reports whether the contact method is part of the catalog.
func (m ContactMethod) Valid() bool {
	for _, info := range contactMethods {
		if info.ID == m {
			return true
		}
	}
	return false
}

// Name returns the display name, or the raw id for unknown methods.
func (m ContactMethod) Name() string {
	for _, info := range contactMethods {
		if info.ID == m {
			return info.Name
		}
	}
	return string(m)
}

// SalespersonInfo carries display metadata for a booth staffer.
type SalespersonInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var salespeople = []SalespersonInfo{
	{ID: "amanda", Name: "Amanda"},
	{ID: "bella", Name: "Bella"},
	{ID: "brandon", Name: "Brandon"},
	{ID: "dani", Name: "Dani"},
	{ID: "james", Name: "James"},
	{ID: "tisha", Name: "Tisha"},
}

// Salespeople returns the staff catalog in display order.
func Salespeople() []SalespersonInfo {
	out := make([]SalespersonInfo, len(salespeople))
	copy(out, salespeople)
	return out
}
