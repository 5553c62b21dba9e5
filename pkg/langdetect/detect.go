// Package langdetect guards phpfix against rewriting non-PHP files.
// It uses go-enry, preferring the filename and falling back to content
// classification for extension-less files.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

const langPHP = "php"

// IsPHP reports whether the file at path with the given content is PHP.
// An empty content slice with a .php extension still counts.
func IsPHP(path string, content []byte) bool {
	if lang, safe := enry.GetLanguageByExtension(path); safe {
		return normalize(lang) == langPHP
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang) == langPHP
	}

	lang := enry.GetLanguage(path, content)
	return normalize(lang) == langPHP
}

func normalize(lang string) string {
	return strings.ToLower(lang)
}
