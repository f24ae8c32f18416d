// Package i18n holds the two interface languages (English and Malayalam),
// tag parsing, and the catalog of localized strings shared by the server and
// the terminal client.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is the process-wide interface language.
type Language string

const (
	English   Language = "en"
	Malayalam Language = "ml"
)

// Default is used whenever a stored or requested language is missing or unknown.
const Default = English

var (
	supported = []language.Tag{language.English, language.Malayalam}
	matcher   = language.NewMatcher(supported)
)

// Parse maps a language tag or Accept-Language style list ("ml-IN",
// "ml;q=0.9,en") to a supported Language, falling back to English. The role
// names "primary" and "secondary" are accepted as aliases.
func Parse(s string) Language {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return Default
	case "primary":
		return English
	case "secondary":
		return Malayalam
	}
	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	if supported[idx] == language.Malayalam {
		return Malayalam
	}
	return English
}

// Valid reports whether l is one of the supported values.
func (l Language) Valid() bool { return l == English || l == Malayalam }

// Other returns the language a toggle switches to.
func (l Language) Other() Language {
	if l == Malayalam {
		return English
	}
	return Malayalam
}

// Locale is the speech locale for the language.
func (l Language) Locale() string {
	if l == Malayalam {
		return "ml-IN"
	}
	return "en-US"
}

// VoicePrefix is the prefix matched against available voice locales.
func (l Language) VoicePrefix() string {
	if l == Malayalam {
		return "ml"
	}
	return "en"
}

func (l Language) String() string { return string(l) }
