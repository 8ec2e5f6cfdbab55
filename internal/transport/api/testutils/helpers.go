package testutils

import "strings"

// GenerateOverBytesUnderRunes returns a string whose length in runes is always less than in bytes.
func GenerateOverBytesUnderRunes(count int) string {
	symbol := "😁" // 4 bytes, 1 rune
	return strings.Repeat(symbol, count)
}
