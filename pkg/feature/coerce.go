package feature

import "strings"

var onWords = []string{"1", "true", "t", "on", "y", "yes"}

func isOnWord(s string) bool {
	for _, w := range onWords {
		if strings.EqualFold(s, w) {
			return true
		}
	}
	return false
}

// IsOn reports whether v reads as "on": the number 1, boolean true,
// or one of "1", "true", "t", "on", "y", "yes" in any letter case.
func IsOn(v Value) bool {
	switch v.kind {
	case KindNumber:
		return v.n == 1
	case KindBool:
		return v.b
	case KindString:
		return isOnWord(v.s)
	default:
		return false
	}
}

// IsOff reports whether v reads as "off": any number other than 1,
// boolean false, or a string outside the IsOn vocabulary.
// Null is neither on nor off.
func IsOff(v Value) bool {
	switch v.kind {
	case KindNumber:
		return v.n != 1
	case KindBool:
		return !v.b
	case KindString:
		return !isOnWord(v.s)
	default:
		return false
	}
}
