// Package htmlsanitize cleans admin-supplied rich text before storage.
// It uses bluemonday to strip dangerous HTML while preserving safe formatting.
package htmlsanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// policy is the shared bluemonday policy for sanitizing rich text.
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

// getPolicy returns the shared sanitization policy, creating it on first use.
func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.UGCPolicy()

		// Common inline formatting produced by the admin editor
		policy.AllowElements("u", "s", "sub", "sup", "mark")
	})
	return policy
}

// Sanitize cleans HTML input, removing potentially dangerous elements and
// attributes. Safe formatting like bold, italic, lists, and links is kept.
func Sanitize(html string) string {
	if html == "" {
		return ""
	}
	return getPolicy().Sanitize(html)
}

// IsPlainText checks if content appears to be plain text (no HTML tags).
func IsPlainText(content string) bool {
	return !strings.ContainsAny(content, "<>")
}
