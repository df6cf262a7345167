package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// SiteUUID derives the registry id for a site key.
func SiteUUID(siteKey string) uuid.UUID {
	return UUID("go-sections:site:" + strings.ToLower(strings.TrimSpace(siteKey)))
}

// HomepageSectionUUID derives a stable id for a homepage section so seeds and
// imports can upsert by identifier.
func HomepageSectionUUID(siteKey, identifier string) uuid.UUID {
	return UUID("go-sections:homepage_section:" + strings.ToLower(strings.TrimSpace(siteKey)) + ":" + strings.ToLower(strings.TrimSpace(identifier)))
}
