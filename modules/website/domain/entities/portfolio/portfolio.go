package portfolio

// Project is a single portfolio piece shown in a designer's showcase.
type Project struct {
	ID      string   `json:"id" toml:"id"`
	Title   string   `json:"title" toml:"title"`
	Preview string   `json:"preview" toml:"preview"`
	Tags    []string `json:"tags" toml:"tags"`
}

// Designer groups the projects credited to one artist.
type Designer struct {
	ID          string    `json:"id" toml:"id"`
	Name        string    `json:"name" toml:"name"`
	Role        string    `json:"role,omitempty" toml:"role"`
	Specialties []string  `json:"specialties,omitempty" toml:"specialties"`
	Projects    []Project `json:"projects" toml:"projects"`
}

// ServiceID buckets projects into the studio's service lines.
type ServiceID string

const (
	ServiceBanners    ServiceID = "banners"
	ServiceWallpapers ServiceID = "wallpapers"
	ServiceThumbnails ServiceID = "thumbnails"
	ServiceEmotes     ServiceID = "emotes"
	ServiceLogos      ServiceID = "logos"
	ServiceOther      ServiceID = "other"
)

// tagToService maps the free-form tags used in project data onto
// service lines. Tags not listed here fall through to ServiceOther.
var tagToService = map[string]ServiceID{
	"Banner":        ServiceBanners,
	"Anime Header":  ServiceBanners,
	"Social Media":  ServiceBanners,
	"Thumbnail":     ServiceThumbnails,
	"Twitch Emotes": ServiceEmotes,
	"Wallpaper":     ServiceWallpapers,
	"Wallpapers":    ServiceWallpapers,
	"Logo":          ServiceLogos,
	"Logos":         ServiceLogos,
}

var serviceLabels = map[ServiceID]string{
	ServiceBanners:    "Banners",
	ServiceWallpapers: "Wallpapers",
	ServiceThumbnails: "Thumbnails",
	ServiceEmotes:     "Twitch Emotes",
	ServiceLogos:      "Logos",
	ServiceOther:      "Other Work",
}

func (s ServiceID) Label() string {
	if label, ok := serviceLabels[s]; ok {
		return label
	}
	return "Selected Work"
}

// ServiceFor classifies a project by its first recognizable tag.
func ServiceFor(p Project) ServiceID {
	for _, tag := range p.Tags {
		if mapped, ok := tagToService[tag]; ok {
			return mapped
		}
	}
	return ServiceOther
}

// Category is one tab in a designer's showcase.
type Category struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Projects []Project `json:"projects"`
}

// BuildCategories derives the tab list for a designer: an "All" tab
// first, one tab per service line in first-encounter order, and "Other
// Work" last when any project defies classification.
func BuildCategories(d Designer) []Category {
	grouped := make(map[ServiceID][]Project)
	var order []ServiceID
	for _, project := range d.Projects {
		serviceID := ServiceFor(project)
		if _, seen := grouped[serviceID]; !seen {
			order = append(order, serviceID)
		}
		grouped[serviceID] = append(grouped[serviceID], project)
	}

	var categories []Category
	if len(d.Projects) > 0 {
		categories = append(categories, Category{
			ID:       "all",
			Label:    "All",
			Projects: d.Projects,
		})
	}
	for _, serviceID := range order {
		if serviceID == ServiceOther {
			continue
		}
		categories = append(categories, Category{
			ID:       string(serviceID),
			Label:    serviceID.Label(),
			Projects: grouped[serviceID],
		})
	}
	if other, ok := grouped[ServiceOther]; ok {
		categories = append(categories, Category{
			ID:       string(ServiceOther),
			Label:    ServiceOther.Label(),
			Projects: other,
		})
	}
	return categories
}
