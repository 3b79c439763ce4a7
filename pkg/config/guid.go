package config

import "github.com/google/uuid"

// GenerateGUID returns a fresh random GUID in canonical form, for test
// fixtures and other callers that need a throwaway but well-formed slave
// identity rather than a hand-typed placeholder string.
func GenerateGUID() string {
	return uuid.NewString()
}

// ValidGUID reports whether s parses as a canonical UUID. The reference
// grammar treats a slave's GUID as an opaque matching token and never
// enforces this itself — callers that additionally want to catch a
// copy-pasted or truncated GUID early can use this as a soft check.
func ValidGUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
