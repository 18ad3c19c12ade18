// Package langdetect guesses the language of a code block that was written
// without an info string, so imported code blocks still carry a language.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Unknown is returned when no language can be told apart with confidence.
const Unknown = ""

// classifierCandidates limits the enry classifier to languages that show
// up in prose documents.
//
//nolint:gochecknoglobals // read-only lookup table
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

type rule struct {
	lang  string
	match func(src []byte, text string) bool
}

// rules run in order; the first match wins.
//
//nolint:gochecknoglobals // read-only lookup table
var rules = []rule{
	{"go", func(src []byte, _ string) bool {
		return bytes.HasPrefix(src, []byte("package "))
	}},
	{"python", func(_ []byte, text string) bool {
		return (strings.Contains(text, "def ") && strings.Contains(text, "):")) ||
			strings.Contains(text, "__name__") ||
			strings.HasPrefix(text, "import ") && !strings.Contains(text, "import (") ||
			strings.HasPrefix(text, "from ") && strings.Contains(text, " import ")
	}},
	{"html", func(src []byte, _ string) bool {
		lower := bytes.ToLower(src)
		return containsAny(lower, "<!doctype html", "<html", "<head>", "<body>")
	}},
	{"json", func(src []byte, _ string) bool {
		return (src[0] == '{' || src[0] == '[') && bytes.IndexByte(src, '"') >= 0
	}},
	{"dockerfile", func(src []byte, _ string) bool {
		return bytes.HasPrefix(src, []byte("FROM ")) ||
			containsAll(src, "WORKDIR ", "COPY ")
	}},
	{"sql", func(_ []byte, text string) bool {
		upper := strings.ToUpper(text)
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{"rust", func(src []byte, _ string) bool {
		return containsAny(src, "fn main()", "println!", "let mut ")
	}},
	{"javascript", func(src []byte, _ string) bool {
		return containsAny(src, "=>", "const ", "console.log")
	}},
	{"yaml", func(src []byte, _ string) bool {
		return yamlKeys(src) >= 2
	}},
}

// Detect returns the fence tag for a code snippet, or Unknown.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return Unknown
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	text := string(trimmed)
	for _, r := range rules {
		if r.match(trimmed, text) {
			return r.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}
	return Unknown
}

// yamlKeys counts lines that look like "key: value" or list items.
func yamlKeys(src []byte) int {
	count := 0
	for line := range bytes.SplitSeq(src, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
			continue
		}
		if bytes.Contains(line, []byte(": ")) && !bytes.ContainsAny(line, "({") && line[0] != '"' {
			count++
		}
	}
	return count
}

func containsAny(src []byte, subs ...string) bool {
	for _, s := range subs {
		if bytes.Contains(src, []byte(s)) {
			return true
		}
	}
	return false
}

func containsAll(src []byte, subs ...string) bool {
	for _, s := range subs {
		if !bytes.Contains(src, []byte(s)) {
			return false
		}
	}
	return true
}

// normalize converts enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
