// internal/chatbot/rules.go
package chatbot

import (
	"fmt"
	"strings"
)

// rule pairs a predicate over the normalized message with a responder over
// the live site data. Order in the table is match priority.
type rule struct {
	name    string
	match   func(msg string) bool
	respond func(info SiteInfo) string
}

const (
	emptyReply   = "Say something and I'll do my best to help! You can ask about projects, skills, or how to get in touch."
	refusalReply = "I can only help with questions about this portfolio - things like projects, skills, experience, or contact details."
)

func fallbackReply(info SiteInfo) string {
	return fmt.Sprintf("I'm not sure about that one. You can ask me about %s's projects, skills, or experience - or just ask for contact details.", orDefault(info.OwnerName, "the site owner"))
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func defaultRules() []rule {
	return []rule{
		{
			name: "greeting",
			match: func(msg string) bool {
				return containsAny(msg, "hello", "hey", "good morning", "good afternoon", "good evening", "howdy") ||
					msg == "hi" || strings.HasPrefix(msg, "hi ") || strings.HasSuffix(msg, " hi")
			},
			respond: func(info SiteInfo) string {
				return fmt.Sprintf("Hi! I'm the assistant for %s's portfolio. Ask me about projects, skills, experience, or how to get in touch.", orDefault(info.OwnerName, "this"))
			},
		},
		{
			name: "help",
			match: func(msg string) bool {
				return containsAny(msg, "help", "what can you", "how do you work", "what do you do")
			},
			respond: func(info SiteInfo) string {
				return "I can tell you about projects, skills, experience, pricing, availability, and contact details. What would you like to know?"
			},
		},
		{
			name: "email",
			match: func(msg string) bool {
				return containsAny(msg, "email", "e-mail", "mail address")
			},
			respond: func(info SiteInfo) string {
				if info.Email == "" {
					return "There's no public email listed right now - try the contact form on the site."
				}
				return fmt.Sprintf("You can reach %s at %s.", orDefault(info.OwnerName, "the owner"), info.Email)
			},
		},
		{
			name: "phone",
			match: func(msg string) bool {
				return containsAny(msg, "phone", "call you", "telephone", "mobile number")
			},
			respond: func(info SiteInfo) string {
				if info.Phone == "" {
					return "There's no public phone number listed - email is the best way to get in touch."
				}
				return fmt.Sprintf("The listed phone number is %s.", info.Phone)
			},
		},
		{
			name: "location",
			match: func(msg string) bool {
				return containsAny(msg, "where are you", "location", "based in", "city", "country", "timezone")
			},
			respond: func(info SiteInfo) string {
				if info.Location == "" {
					return "Location isn't listed publicly, but remote work is usually an option."
				}
				return fmt.Sprintf("%s is based in %s.", orDefault(info.OwnerName, "The owner"), info.Location)
			},
		},
		{
			name: "social",
			match: func(msg string) bool {
				return containsAny(msg, "linkedin", "github", "social media", "social profile")
			},
			respond: func(info SiteInfo) string {
				var parts []string
				if info.LinkedIn != "" {
					parts = append(parts, "LinkedIn: "+info.LinkedIn)
				}
				if info.GitHub != "" {
					parts = append(parts, "GitHub: "+info.GitHub)
				}
				if len(parts) == 0 {
					return "No social profiles are listed right now - the contact page has the best ways to connect."
				}
				return "You can find the profiles here. " + strings.Join(parts, " | ")
			},
		},
		{
			name: "contact",
			match: func(msg string) bool {
				return containsAny(msg, "contact", "get in touch", "reach you", "reach out", "hire", "hiring", "work with you", "work together")
			},
			respond: func(info SiteInfo) string {
				var parts []string
				if info.Email != "" {
					parts = append(parts, "email "+info.Email)
				}
				if info.Phone != "" {
					parts = append(parts, "phone "+info.Phone)
				}
				if len(parts) == 0 {
					return "The contact page on this site is the best way to get in touch."
				}
				return fmt.Sprintf("The best way to reach %s: %s. The contact page also has a form.", orDefault(info.OwnerName, "the owner"), strings.Join(parts, " or "))
			},
		},
		{
			name: "projects",
			match: func(msg string) bool {
				return containsAny(msg, "project", "portfolio", "work you", "your work", "case stud", "built")
			},
			respond: func(info SiteInfo) string {
				if info.ProjectCount > 0 {
					return fmt.Sprintf("There are %d featured projects on the site - take a look at the services and achievements sections for the highlights.", info.ProjectCount)
				}
				return "The services and achievements sections showcase the featured work - have a look there for the highlights."
			},
		},
		{
			name: "experience",
			match: func(msg string) bool {
				return containsAny(msg, "experience", "how long", "years", "background", "career")
			},
			respond: func(info SiteInfo) string {
				if info.YearsExp > 0 {
					return fmt.Sprintf("%s has %d+ years of professional experience. The about section has the full story.", orDefault(info.OwnerName, "The owner"), info.YearsExp)
				}
				return "The about section covers the professional background in detail."
			},
		},
		{
			name: "skills",
			match: func(msg string) bool {
				return containsAny(msg, "skill", "technolog", "stack", "tools", "languages", "framework")
			},
			respond: func(info SiteInfo) string {
				if len(info.Skills) > 0 {
					return "Core skills include: " + strings.Join(info.Skills, ", ") + "."
				}
				return "The services section lists the main areas of expertise."
			},
		},
		{
			name: "pricing",
			match: func(msg string) bool {
				return containsAny(msg, "price", "pricing", "cost", "rate", "charge", "budget", "quote", "how much")
			},
			respond: func(info SiteInfo) string {
				return "Pricing depends on scope - the fastest way to get a quote is to describe your project via the contact page or email."
			},
		},
		{
			name: "timeline",
			match: func(msg string) bool {
				return containsAny(msg, "timeline", "how fast", "turnaround", "deadline", "when can", "available", "availability")
			},
			respond: func(info SiteInfo) string {
				return "Availability and timelines vary by project. Reach out with your dates and scope and you'll get a realistic estimate."
			},
		},
		{
			name: "process",
			match: func(msg string) bool {
				return containsAny(msg, "process", "how do we start", "first step", "kick off", "kickoff", "onboard")
			},
			respond: func(info SiteInfo) string {
				return "Projects usually start with a short discovery call, then a written proposal with scope and milestones. Use the contact page to set one up."
			},
		},
		{
			name: "about",
			match: func(msg string) bool {
				return containsAny(msg, "who are you", "about you", "about the owner", "tell me about")
			},
			respond: func(info SiteInfo) string {
				name := orDefault(info.OwnerName, "The site owner")
				if info.Title != "" {
					return fmt.Sprintf("%s is a %s. The about section has the full background.", name, strings.ToLower(info.Title))
				}
				return fmt.Sprintf("%s runs this site - the about section has the full background.", name)
			},
		},
		{
			name: "thanks",
			match: func(msg string) bool {
				return containsAny(msg, "thank", "thanks", "appreciate", "cheers")
			},
			respond: func(info SiteInfo) string {
				return "You're welcome! Anything else you'd like to know?"
			},
		},
		{
			name: "farewell",
			match: func(msg string) bool {
				return containsAny(msg, "bye", "goodbye", "see you", "later", "good night")
			},
			respond: func(info SiteInfo) string {
				return "Thanks for stopping by! Feel free to come back anytime."
			},
		},
	}
}
