package parser

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// normalize lowercases raw input, strips decorative quoting characters and
// folds spelled-out number words into digits so the clock/offset regexes,
// which expect digit sequences, can match speech-to-text transcripts.
func normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = reQuotes.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// foldNumberWords converts Russian cardinals to digit strings. Two passes:
// tens-ones compounds ("двадцать три" -> "23") first, then remaining
// standalone words ("девять" -> "9").
func foldNumberWords(s string) string {
	for _, tw := range tensWords {
		for _, ow := range onesWords {
			compound := tw.word + " " + ow.word
			s = replaceWord(s, compound, strconv.Itoa(tw.value+ow.value))
		}
	}
	for _, w := range tensWords {
		s = replaceWord(s, w.word, strconv.Itoa(w.value))
	}
	for _, w := range onesWords {
		s = replaceWord(s, w.word, strconv.Itoa(w.value))
	}
	return s
}

// replaceWord substitutes every stand-alone occurrence of word in s with
// repl. RE2's \b is ASCII-only and useless against Cyrillic, so boundaries
// are checked manually: the match must not touch a letter or digit on either
// side. This also keeps "один" from firing inside "одиннадцать".
func replaceWord(s, word, repl string) string {
	if !strings.Contains(s, word) {
		return s
	}
	var b strings.Builder
	for {
		i := strings.Index(s, word)
		if i < 0 {
			b.WriteString(s)
			break
		}
		end := i + len(word)
		if boundaryBefore(s, i) && boundaryAfter(s, end) {
			b.WriteString(s[:i])
			b.WriteString(repl)
		} else {
			b.WriteString(s[:end])
		}
		s = s[end:]
	}
	return b.String()
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// containsWord reports whether word occurs in s as a whole word.
func containsWord(s, word string) bool {
	for from := 0; ; {
		i := strings.Index(s[from:], word)
		if i < 0 {
			return false
		}
		i += from
		if boundaryBefore(s, i) && boundaryAfter(s, i+len(word)) {
			return true
		}
		from = i + len(word)
	}
}
