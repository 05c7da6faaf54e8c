package ocr

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	spaceRun   = regexp.MustCompile(`[ \t]+`)
	newlineRun = regexp.MustCompile(`\n{3,}`)
)

// CleanText strips OCR garbage and collapses whitespace.
func CleanText(raw string) string {
	text := strings.ReplaceAll(raw, "\f", "\n")
	text = strings.ReplaceAll(text, "�", "")
	text = strings.ReplaceAll(text, "\r", "")

	text = spaceRun.ReplaceAllString(text, " ")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = newlineRun.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// DetectMedicineName picks the first word made only of letters, which on a
// strip or box is almost always the product name.
func DetectMedicineName(text string) string {
	for _, word := range strings.Fields(text) {
		word = strings.Trim(word, ".,:;()[]")
		if utf8.RuneCountInString(word) < 3 {
			continue
		}
		if strings.IndexFunc(word, func(r rune) bool { return !unicode.IsLetter(r) }) >= 0 {
			continue
		}
		first, size := utf8.DecodeRuneInString(word)
		return string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
	}
	return ""
}
