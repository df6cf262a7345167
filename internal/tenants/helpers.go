package tenants

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-sections/internal/identity"
	"github.com/google/uuid"
)

var siteKeyPattern = regexp.MustCompile(`^[a-z0-9_-]+$`)

// NormalizeKey trims and lowercases site keys.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// ValidKey reports whether key is a well formed, normalised site key.
func ValidKey(key string) bool {
	return siteKeyPattern.MatchString(key)
}

// IDForKey derives the deterministic registry id for a site key.
func IDForKey(key string) uuid.UUID {
	return identity.SiteUUID(NormalizeKey(key))
}

func deriveSiteName(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	return strings.ToUpper(key[:1]) + key[1:]
}

func cloneSite(site *Site) *Site {
	if site == nil {
		return nil
	}
	cloned := *site
	cloned.Description = cloneString(site.Description)
	return &cloned
}

func cloneSites(src []*Site) []*Site {
	out := make([]*Site, len(src))
	for i, site := range src {
		out[i] = cloneSite(site)
	}
	return out
}

func cloneString(value *string) *string {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}
