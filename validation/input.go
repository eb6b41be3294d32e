package validation

import (
	"regexp"
	"unicode/utf16"
)

// Limits applied to wizard fields as they are entered. Lengths count UTF-16 code units,
// the same unit the server checks use.
const (
	MaxLine1Length    = maxLine1Length
	MaxCityLength     = 200
	MaxPostcodeLength = 10
	MaxNameLength     = maxNameLength
	MaxPhoneLength    = 20
	MaxNotesLength    = maxNotesLength
)

var nonPhoneChars = regexp.MustCompile(`[^\d\s+()-]`)

// FilterPhone drops every character that cannot appear in a phone number
func FilterPhone(s string) string {
	return nonPhoneChars.ReplaceAllString(s, "")
}

// TruncateUTF16 cuts s to at most max UTF-16 code units. A surrogate pair is never split.
func TruncateUTF16(s string, max int) string {
	n := 0
	for i, r := range s {
		w := utf16.RuneLen(r)
		if n+w > max {
			return s[:i]
		}
		n += w
	}
	return s
}

// utf16Len counts s in UTF-16 code units
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
