package blogspot

import "strings"

// Truncate shortens text to roughly n characters without splitting a word.
// It keeps everything up to the first space at or after position n. If no
// such space exists the text is returned unchanged. Non-positive n disables
// truncation.
func Truncate(text string, n int) string {
	if n <= 0 {
		return text
	}
	if text == "" {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	prefix := string(runes[:n])
	if runes[n-1] == ' ' {
		return strings.TrimSpace(prefix)
	}

	suffix := string(runes[n:])
	if pos := strings.IndexByte(suffix, ' '); pos >= 0 {
		return strings.TrimSpace(prefix + suffix[:pos])
	}
	return text
}
