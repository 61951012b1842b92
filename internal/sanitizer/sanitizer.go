package sanitizer

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips script-bearing markup from user-submitted HTML before it
// is persisted.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	// UGCPolicy allows the usual authoring tags (p, a, strong, em, ...)
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(true)

	return &Sanitizer{policy: p}
}

func (s *Sanitizer) Sanitize(html string) string {
	return strings.TrimSpace(s.policy.Sanitize(html))
}
