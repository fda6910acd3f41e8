package part

import "strings"

const defaultPlaceholder = "https://via.placeholder.com/400x300/6c757d/ffffff?text=Motorcycle+Part"

var categoryPlaceholders = map[string]string{
	"body panels":    "https://via.placeholder.com/400x300/6f42c1/ffffff?text=Body+Panels",
	"petrol tank":    "https://via.placeholder.com/400x300/28a745/ffffff?text=Petrol+Tank",
	"suspension":     "https://via.placeholder.com/400x300/fd7e14/ffffff?text=Suspension",
	"body parts":     "https://via.placeholder.com/400x300/6f42c1/ffffff?text=Body+Parts",
	"transmission":   "https://via.placeholder.com/400x300/e83e8c/ffffff?text=Transmission",
	"electrical":     "https://via.placeholder.com/400x300/ffc107/000000?text=Electrical",
	"engine":         "https://via.placeholder.com/400x300/28a745/ffffff?text=Engine",
	"lights":         "https://via.placeholder.com/400x300/17a2b8/ffffff?text=Lights",
	"fuel system":    "https://via.placeholder.com/400x300/dc3545/ffffff?text=Fuel+System",
	"wheels":         "https://via.placeholder.com/400x300/343a40/ffffff?text=Wheels",
	"engine parts":   "https://via.placeholder.com/400x300/28a745/ffffff?text=Engine+Parts",
	"brake system":   "https://via.placeholder.com/400x300/dc3545/ffffff?text=Brake+System",
	"exhaust system": "https://via.placeholder.com/400x300/dc3545/ffffff?text=Exhaust+System",
}

// DisplayImage returns the part image, or a category placeholder when the part has none.
func (p *Part) DisplayImage() string {
	if url := strings.TrimSpace(p.a.ImageURL); url != "" {
		return url
	}
	if url, ok := categoryPlaceholders[strings.ToLower(p.a.Category)]; ok {
		return url
	}
	return defaultPlaceholder
}
