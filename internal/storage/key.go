package storage

import (
	"net/url"
	"strings"
)

const stateKeyPrefix = "checklistState_"

// StateKey derives the store key for a page. The page URL is escaped the
// same way a browser's encodeURIComponent does.
func StateKey(pageURL string) string {
	return stateKeyPrefix + encodeURIComponent(pageURL)
}

const upperhex = "0123456789ABCDEF"

func encodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreservedComponentByte(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&15])
	}
	return b.String()
}

func isUnreservedComponentByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// PageFromKey reverses StateKey. ok is false for keys without the state prefix.
func PageFromKey(key string) (string, bool) {
	if !strings.HasPrefix(key, stateKeyPrefix) {
		return "", false
	}
	page, err := url.PathUnescape(strings.TrimPrefix(key, stateKeyPrefix))
	if err != nil {
		return "", false
	}
	return page, true
}
