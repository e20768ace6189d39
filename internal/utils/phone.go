package utils

import (
	"strings"

	"github.com/ttacon/libphonenumber"
)

// NormalizePhone formats raw in international notation when it is a valid
// number for defaultRegion (or carries its own country code). Anything that
// does not parse is returned trimmed but otherwise as typed.
func NormalizePhone(raw, defaultRegion string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	num, err := libphonenumber.Parse(raw, defaultRegion)
	if err != nil || !libphonenumber.IsValidNumber(num) {
		return raw
	}
	return libphonenumber.Format(num, libphonenumber.INTERNATIONAL)
}
