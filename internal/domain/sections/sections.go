// Package sections is the canonical registry of content sections.
//
// Every public-facing section of the site (hero, about, services, ...) is a
// singleton document in its own MongoDB collection. The registry is the single
// source of truth for each section's collection name, updatable fields, and
// default content. Schema, handlers, seeding, and tests all read from here so
// the defaults cannot drift apart.
package sections

import "go.mongodb.org/mongo-driver/bson"

// Definition describes one content section.
type Definition struct {
	// Key is the URL path segment and event name for the section (e.g. "home").
	Key string

	// Collection is the MongoDB collection holding the singleton document.
	Collection string

	// Fields lists the updatable field names. Fields not listed here are
	// silently ignored on update.
	Fields []string

	// RichText lists fields that may contain HTML and are sanitized on update.
	RichText []string

	// Defaults returns a fresh copy of the section's default document.
	// The returned map never includes _id, singleton, or timestamps; the
	// store adds those.
	Defaults func() bson.M
}

// HasField reports whether name is an updatable field of this section.
func (d Definition) HasField(name string) bool {
	for _, f := range d.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// IsRichText reports whether name is sanitized as HTML on update.
func (d Definition) IsRichText(name string) bool {
	for _, f := range d.RichText {
		if f == name {
			return true
		}
	}
	return false
}

// Section keys.
const (
	KeyHome         = "home"
	KeyAbout        = "about"
	KeyServices     = "services"
	KeyAchievements = "achievements"
	KeyTeam         = "team"
	KeyBlog         = "blog"
	KeyYouTube      = "youtube"
	KeyContact      = "contact"
	KeyFooter       = "footer"
	KeyBranding     = "branding"
)

// registry holds all section definitions in display order.
var registry = []Definition{
	{
		Key:        KeyHome,
		Collection: "section_home",
		Fields: []string{
			"name", "title", "subtitle", "intro", "hero_image",
			"cta_label", "cta_link", "social",
		},
		Defaults: homeDefaults,
	},
	{
		Key:        KeyAbout,
		Collection: "section_about",
		Fields: []string{
			"heading", "body", "location", "years_experience",
			"projects_completed", "portrait_image", "highlights",
		},
		RichText: []string{"body"},
		Defaults: aboutDefaults,
	},
	{
		Key:        KeyServices,
		Collection: "section_services",
		Fields:     []string{"heading", "intro", "services"},
		Defaults:   servicesDefaults,
	},
	{
		Key:        KeyAchievements,
		Collection: "section_achievements",
		Fields:     []string{"heading", "intro", "achievements"},
		Defaults:   achievementsDefaults,
	},
	{
		Key:        KeyTeam,
		Collection: "section_team",
		Fields:     []string{"heading", "intro", "members"},
		Defaults:   teamDefaults,
	},
	{
		Key:        KeyBlog,
		Collection: "section_blog",
		Fields:     []string{"heading", "intro", "posts"},
		RichText:   []string{"intro"},
		Defaults:   blogDefaults,
	},
	{
		Key:        KeyYouTube,
		Collection: "section_youtube",
		Fields:     []string{"heading", "intro", "channel_url", "videos"},
		Defaults:   youtubeDefaults,
	},
	{
		Key:        KeyContact,
		Collection: "section_contact",
		Fields: []string{
			"heading", "intro", "email", "phone", "address",
			"map_embed", "social",
		},
		Defaults: contactDefaults,
	},
	{
		Key:        KeyFooter,
		Collection: "section_footer",
		Fields:     []string{"text", "copyright", "links", "social"},
		RichText:   []string{"text"},
		Defaults:   footerDefaults,
	},
	{
		Key:        KeyBranding,
		Collection: "section_branding",
		Fields: []string{
			"site_name", "logo_url", "favicon_url",
			"primary_color", "accent_color",
		},
		Defaults: brandingDefaults,
	},
}

// All returns every section definition in display order.
func All() []Definition {
	out := make([]Definition, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the definition for key, if registered.
func Lookup(key string) (Definition, bool) {
	for _, d := range registry {
		if d.Key == key {
			return d, true
		}
	}
	return Definition{}, false
}

// Keys returns all section keys in display order.
func Keys() []string {
	keys := make([]string, len(registry))
	for i, d := range registry {
		keys[i] = d.Key
	}
	return keys
}
