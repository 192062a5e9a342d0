package settings

// The site configuration is a fixed set of named sections. Each section is
// persisted as its own row; on load, sections without a stored row are
// substituted with the hardcoded defaults. A saved section round-trips
// exactly, including fields the admin deliberately cleared.

// General holds shop identity fields.
type General struct {
	ShopName    string `json:"shopName"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
	LogoURL     string `json:"logoUrl"`
}

// Contact holds the public contact details.
type Contact struct {
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// Hours holds the opening hours as display strings.
type Hours struct {
	Weekdays string `json:"weekdays"`
	Saturday string `json:"saturday"`
	Sunday   string `json:"sunday"`
}

// Social holds the social profile links.
type Social struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
}

// Hero holds the landing banner copy.
type Hero struct {
	Heading       string `json:"heading"`
	Subheading    string `json:"subheading"`
	BackgroundURL string `json:"backgroundUrl"`
}

// About holds the about-section copy and headline stats.
type About struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Experience  string `json:"experience"`
	Customers   string `json:"customers"`
	Awards      string `json:"awards"`
}

// SiteSettings is the complete nested configuration the site renders from.
type SiteSettings struct {
	General General `json:"general"`
	Contact Contact `json:"contact"`
	Hours   Hours   `json:"hours"`
	Social  Social  `json:"social"`
	Hero    Hero    `json:"hero"`
	About   About   `json:"about"`
}

// SectionKeys lists the row keys in persistence order.
var SectionKeys = []string{"general", "contact", "hours", "social", "hero", "about"}

// Defaults returns the hardcoded configuration used before anything is saved.
func Defaults() SiteSettings {
	return SiteSettings{
		General: General{
			ShopName:    "Old Thai Barber",
			Tagline:     "Classic Cuts. Modern Style.",
			Description: "Premium men's grooming experience",
		},
		Contact: Contact{
			Phone:   "+66 123 456 789",
			Email:   "info@oldthaibarber.com",
			Address: "123 Barber Street, Bangkok, Thailand",
		},
		Hours: Hours{
			Weekdays: "9:00 AM - 8:00 PM",
			Saturday: "9:00 AM - 6:00 PM",
			Sunday:   "Closed",
		},
		Social: Social{
			Facebook:  "https://facebook.com",
			Instagram: "https://instagram.com",
			Twitter:   "https://twitter.com",
		},
		Hero: Hero{
			Heading:    "Classic Cuts. Modern Style.",
			Subheading: "Premium Men's Barber Experience",
		},
		About: About{
			Title:       "Traditional Barbering with a Modern Touch",
			Description: "With over two decades of experience, we combine timeless techniques with contemporary style to give you the perfect look.",
			Experience:  "20+",
			Customers:   "10K+",
			Awards:      "15+",
		},
	}
}

// MergeWithDefaults substitutes the default section for every section key
// absent from present. Sections that were stored pass through untouched,
// so cleared fields are never resurrected from the defaults.
func (s SiteSettings) MergeWithDefaults(present map[string]bool) SiteSettings {
	def := Defaults()
	if !present["general"] {
		s.General = def.General
	}
	if !present["contact"] {
		s.Contact = def.Contact
	}
	if !present["hours"] {
		s.Hours = def.Hours
	}
	if !present["social"] {
		s.Social = def.Social
	}
	if !present["hero"] {
		s.Hero = def.Hero
	}
	if !present["about"] {
		s.About = def.About
	}
	return s
}
