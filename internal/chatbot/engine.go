// Package chatbot implements the site's rule-based assistant. Replies are
// produced by a fixed, ordered rule table: the first rule whose predicate
// matches the normalized message wins. There is no model and no randomness,
// so the same message always yields the same reply for the same site data.
package chatbot

import (
	"strings"
)

// SiteInfo carries the live content the responder templates pull from.
// Populated per-request from the contact and home sections so answers stay
// current without restarting the server.
type SiteInfo struct {
	OwnerName    string
	Title        string
	Email        string
	Phone        string
	Location     string
	LinkedIn     string
	GitHub       string
	ProjectCount int
	YearsExp     int
	Skills       []string
}

// Engine answers visitor messages from its rule table.
type Engine struct {
	rules []rule
}

// New creates an engine with the default rule table.
func New() *Engine {
	return &Engine{rules: defaultRules()}
}

// Reply produces the bot's answer to a visitor message.
func (e *Engine) Reply(message string, info SiteInfo) string {
	msg := normalize(message)
	if msg == "" {
		return emptyReply
	}

	for _, r := range e.rules {
		if r.match(msg) {
			return r.respond(info)
		}
	}

	// Nothing matched. Only engage on messages that are at least about
	// the site's subject matter; anything else gets a polite refusal.
	if !relevant(msg) {
		return refusalReply
	}
	return fallbackReply(info)
}

// normalize lowercases and collapses whitespace so predicates can match on
// plain substrings.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// containsAny reports whether msg contains any of the given substrings.
func containsAny(msg string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(msg, sub) {
			return true
		}
	}
	return false
}

// relevanceTerms gates the fallback: a message with none of these is
// off-topic for a portfolio site assistant.
var relevanceTerms = []string{
	"work", "project", "portfolio", "contact", "hire", "hiring", "email",
	"phone", "skill", "experience", "service", "price", "cost", "rate",
	"available", "availability", "resume", "cv", "about", "you", "your",
	"site", "website", "design", "develop", "build", "freelance",
}

func relevant(msg string) bool {
	return containsAny(msg, relevanceTerms...)
}
