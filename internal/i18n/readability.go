package i18n

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// Mis-decoded UTF-8 read as windows-1252 turns Cyrillic text into runs of
// these two lead bytes; legacy imports carry them frequently enough that they
// mark a value as corrupted.
const mojibakeMarkers = "ÐÑ"

// ReadableText reports whether a plain text value holds real content. A value
// is unreadable when it is empty or whitespace, consists solely of question
// marks, carries mojibake marker characters, or contains no letter/digit rune.
//
// The marker heuristic is tuned to Latin/Cyrillic content and may misclassify
// legitimate text in other scripts.
func ReadableText(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}
	if strings.ContainsAny(trimmed, mojibakeMarkers) {
		return false
	}

	onlyQuestionMarks := true
	hasLetterOrDigit := false
	for _, r := range trimmed {
		if r != '?' && !unicode.IsSpace(r) {
			onlyQuestionMarks = false
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			hasLetterOrDigit = true
		}
	}
	if onlyQuestionMarks {
		return false
	}
	return hasLetterOrDigit
}

// ReadableHTML strips markup and applies ReadableText to the remaining text.
func ReadableHTML(value string) bool {
	return ReadableText(StripTags(value))
}

// StripTags reduces an HTML fragment to its text content. Script and style
// bodies are dropped along with the tags themselves.
func StripTags(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}

	var (
		builder strings.Builder
		skip    string
	)
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tokenType := tokenizer.Next()
		switch tokenType {
		case html.ErrorToken:
			return builder.String()
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skip = tag
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if skip != "" && string(name) == skip {
				skip = ""
			}
		case html.TextToken:
			if skip == "" {
				builder.Write(tokenizer.Text())
			}
		}
	}
}
