package sections

import "go.mongodb.org/mongo-driver/bson"

// Sub-entities embedded in section documents. They are stored inline as
// arrays of sub-documents, not as separately identified rows.

// SocialLinks holds the social profile URLs shown in several sections.
type SocialLinks struct {
	LinkedIn string `bson:"linkedin" json:"linkedin"`
	Twitter  string `bson:"twitter" json:"twitter"`
	GitHub   string `bson:"github" json:"github"`
	Email    string `bson:"email" json:"email"`
}

// Service is one offering in the services section.
type Service struct {
	Title       string   `bson:"title" json:"title"`
	Description string   `bson:"description" json:"description"`
	Icon        string   `bson:"icon" json:"icon"`
	Features    []string `bson:"features" json:"features"`
	Color       string   `bson:"color" json:"color"`
}

// Achievement is one milestone in the achievements timeline.
type Achievement struct {
	Year        string `bson:"year" json:"year"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	Icon        string `bson:"icon" json:"icon"`
	Color       string `bson:"color" json:"color"`
}

// TeamMember is one person in the team section.
type TeamMember struct {
	Name     string      `bson:"name" json:"name"`
	Role     string      `bson:"role" json:"role"`
	Location string      `bson:"location" json:"location"`
	Bio      string      `bson:"bio" json:"bio"`
	Initials string      `bson:"initials" json:"initials"`
	Skills   []string    `bson:"skills" json:"skills"`
	Social   SocialLinks `bson:"social" json:"social"`
}

// BlogPost is one entry in the blog section.
type BlogPost struct {
	Title       string   `bson:"title" json:"title"`
	Excerpt     string   `bson:"excerpt" json:"excerpt"`
	Content     string   `bson:"content" json:"content"`
	Author      string   `bson:"author" json:"author"`
	PublishedAt string   `bson:"published_at" json:"published_at"`
	Tags        []string `bson:"tags" json:"tags"`
	Slug        string   `bson:"slug" json:"slug"`
}

// Video is one entry in the YouTube section.
type Video struct {
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description" json:"description"`
	VideoID     string `bson:"video_id" json:"video_id"`
	Thumbnail   string `bson:"thumbnail" json:"thumbnail"`
	Views       string `bson:"views" json:"views"`
	PublishedAt string `bson:"published_at" json:"published_at"`
}

// FooterLink is one navigation link in the footer.
type FooterLink struct {
	Label string `bson:"label" json:"label"`
	URL   string `bson:"url" json:"url"`
}

// Default documents. Every field has a value so a freshly created section is
// fully populated with placeholder copy an admin can edit in place.

func homeDefaults() bson.M {
	return bson.M{
		"name":       "Jordan Avery",
		"title":      "Entrepreneur & Developer",
		"subtitle":   "Building products people actually use",
		"intro":      "I help companies turn rough ideas into shipped software. Over a decade of experience across startups and enterprise teams.",
		"hero_image": "",
		"cta_label":  "Get in touch",
		"cta_link":   "#contact",
		"social": SocialLinks{
			LinkedIn: "https://linkedin.com/in/example",
			Twitter:  "https://twitter.com/example",
			GitHub:   "https://github.com/example",
			Email:    "hello@example.com",
		},
	}
}

func aboutDefaults() bson.M {
	return bson.M{
		"heading":            "About Me",
		"body":               "<p>I am a product-minded engineer who enjoys the whole journey from napkin sketch to production. When I am not writing code I mentor early-stage founders and speak at community meetups.</p>",
		"location":           "Lisbon, Portugal",
		"years_experience":   "10+",
		"projects_completed": "60+",
		"portrait_image":     "",
		"highlights": []string{
			"Full-stack product development",
			"Technical due diligence",
			"Team building and mentoring",
		},
	}
}

func servicesDefaults() bson.M {
	return bson.M{
		"heading": "Services",
		"intro":   "What I can do for you.",
		"services": []Service{
			{
				Title:       "Product Development",
				Description: "End-to-end design and build of web applications, from prototype to production.",
				Icon:        "code",
				Features:    []string{"Discovery workshops", "MVP builds", "Production hardening"},
				Color:       "blue",
			},
			{
				Title:       "Technical Consulting",
				Description: "Architecture reviews, due diligence, and roadmap planning for growing teams.",
				Icon:        "compass",
				Features:    []string{"Architecture reviews", "Hiring support", "Roadmap planning"},
				Color:       "green",
			},
			{
				Title:       "Training & Mentoring",
				Description: "Hands-on workshops and long-term mentoring for engineers and founders.",
				Icon:        "academic-cap",
				Features:    []string{"Team workshops", "1:1 mentoring", "Code review culture"},
				Color:       "purple",
			},
		},
	}
}

func achievementsDefaults() bson.M {
	return bson.M{
		"heading": "Achievements",
		"intro":   "A few milestones along the way.",
		"achievements": []Achievement{
			{
				Year:        "2024",
				Title:       "Launched SaaS platform",
				Description: "Took a B2B analytics product from zero to 10k monthly active users.",
				Icon:        "rocket",
				Color:       "orange",
			},
			{
				Year:        "2022",
				Title:       "Speaker, European Dev Summit",
				Description: "Talked about pragmatic service architecture to an audience of 800.",
				Icon:        "microphone",
				Color:       "blue",
			},
			{
				Year:        "2019",
				Title:       "Founded consultancy",
				Description: "Built a five-person studio serving clients in three countries.",
				Icon:        "briefcase",
				Color:       "green",
			},
		},
	}
}

func teamDefaults() bson.M {
	return bson.M{
		"heading": "The Team",
		"intro":   "Small team, senior people.",
		"members": []TeamMember{
			{
				Name:     "Jordan Avery",
				Role:     "Founder & Lead Engineer",
				Location: "Lisbon, Portugal",
				Bio:      "Full-stack engineer with a product habit.",
				Initials: "JA",
				Skills:   []string{"Go", "TypeScript", "MongoDB"},
				Social: SocialLinks{
					LinkedIn: "https://linkedin.com/in/example",
					GitHub:   "https://github.com/example",
					Email:    "jordan@example.com",
				},
			},
			{
				Name:     "Sam Okafor",
				Role:     "Design Lead",
				Location: "Berlin, Germany",
				Bio:      "Designs interfaces people do not need a manual for.",
				Initials: "SO",
				Skills:   []string{"Product design", "Design systems", "Prototyping"},
				Social: SocialLinks{
					LinkedIn: "https://linkedin.com/in/example2",
					Email:    "sam@example.com",
				},
			},
		},
	}
}

func blogDefaults() bson.M {
	return bson.M{
		"heading": "From the Blog",
		"intro":   "Notes on building software and companies.",
		"posts": []BlogPost{
			{
				Title:       "Shipping beats polishing",
				Excerpt:     "Why the fastest feedback loop wins, and how to build one.",
				Content:     "Most products die waiting for the perfect version. The teams that win are the ones that put something real in front of users early and iterate relentlessly.",
				Author:      "Jordan Avery",
				PublishedAt: "2025-06-12",
				Tags:        []string{"product", "process"},
				Slug:        "shipping-beats-polishing",
			},
			{
				Title:       "Choosing boring technology",
				Excerpt:     "A defense of the stack you already know.",
				Content:     "Every new dependency is a bet. Place few bets, and place them where they matter to your product, not your resume.",
				Author:      "Jordan Avery",
				PublishedAt: "2025-03-02",
				Tags:        []string{"engineering"},
				Slug:        "choosing-boring-technology",
			},
		},
	}
}

func youtubeDefaults() bson.M {
	return bson.M{
		"heading":     "On YouTube",
		"intro":       "Talks, walkthroughs, and build logs.",
		"channel_url": "https://youtube.com/@example",
		"videos": []Video{
			{
				Title:       "Building a CMS backend in a weekend",
				Description: "A start-to-finish build log.",
				VideoID:     "dQw4w9WgXcQ",
				Thumbnail:   "",
				Views:       "12K",
				PublishedAt: "2025-05-20",
			},
		},
	}
}

func contactDefaults() bson.M {
	return bson.M{
		"heading":   "Get in Touch",
		"intro":     "Have a project in mind? Let's talk.",
		"email":     "hello@example.com",
		"phone":     "+351 000 000 000",
		"address":   "Lisbon, Portugal",
		"map_embed": "",
		"social": SocialLinks{
			LinkedIn: "https://linkedin.com/in/example",
			Twitter:  "https://twitter.com/example",
			GitHub:   "https://github.com/example",
			Email:    "hello@example.com",
		},
	}
}

func footerDefaults() bson.M {
	return bson.M{
		"text":      "<p>Thanks for stopping by.</p>",
		"copyright": "© Jordan Avery. All rights reserved.",
		"links": []FooterLink{
			{Label: "Home", URL: "/"},
			{Label: "About", URL: "#about"},
			{Label: "Services", URL: "#services"},
			{Label: "Contact", URL: "#contact"},
		},
		"social": SocialLinks{
			LinkedIn: "https://linkedin.com/in/example",
			GitHub:   "https://github.com/example",
			Email:    "hello@example.com",
		},
	}
}

func brandingDefaults() bson.M {
	return bson.M{
		"site_name":     "Jordan Avery",
		"logo_url":      "",
		"favicon_url":   "",
		"primary_color": "#1d4ed8",
		"accent_color":  "#f59e0b",
	}
}
