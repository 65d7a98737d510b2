// internal/domain/models/settings.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SiteSettings is the aggregate site configuration edited from the admin
// panel. It is a singleton document; per-section visibility is NOT stored
// here; each section document owns its is_visible flag and the settings API
// exposes the combined map as a derived read.
type SiteSettings struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`

	SiteInfo    SiteInfo            `bson:"site_info" json:"site_info"`
	SEO         SEOSettings         `bson:"seo" json:"seo"`
	Performance PerformanceSettings `bson:"performance" json:"performance"`
	Maintenance MaintenanceSettings `bson:"maintenance" json:"maintenance"`

	UpdatedAt *time.Time `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// SiteInfo holds basic identity fields shown across the site.
type SiteInfo struct {
	Title       string `bson:"title" json:"title"`
	Tagline     string `bson:"tagline" json:"tagline"`
	ContactMail string `bson:"contact_mail" json:"contact_mail"`
}

// SEOSettings holds the metadata emitted in page heads.
type SEOSettings struct {
	MetaTitle       string   `bson:"meta_title" json:"meta_title"`
	MetaDescription string   `bson:"meta_description" json:"meta_description"`
	Keywords        []string `bson:"keywords" json:"keywords"`
	OGImage         string   `bson:"og_image" json:"og_image"`
}

// PerformanceSettings tunes client-side behavior.
type PerformanceSettings struct {
	LazyLoadImages bool `bson:"lazy_load_images" json:"lazy_load_images"`
	CacheMaxAgeSec int  `bson:"cache_max_age_sec" json:"cache_max_age_sec"`
}

// MaintenanceSettings gates the whole public site.
type MaintenanceSettings struct {
	Enabled bool   `bson:"enabled" json:"enabled"`
	Message string `bson:"message" json:"message"`
}

// DefaultSiteSettings returns the factory settings document.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		SiteInfo: SiteInfo{
			Title:       "Jordan Avery",
			Tagline:     "Entrepreneur & Developer",
			ContactMail: "hello@example.com",
		},
		SEO: SEOSettings{
			MetaTitle:       "Jordan Avery - Portfolio",
			MetaDescription: "Product development, consulting, and mentoring.",
			Keywords:        []string{"portfolio", "developer", "consulting"},
		},
		Performance: PerformanceSettings{
			LazyLoadImages: true,
			CacheMaxAgeSec: 300,
		},
		Maintenance: MaintenanceSettings{
			Enabled: false,
			Message: "We are doing some maintenance. Back shortly.",
		},
	}
}
