// Package i18n holds the flat per-language message tables used to localize
// API-facing messages. Lookup falls back to English and finally to the raw
// key, so a missing translation never produces an empty message.
package i18n

import "strings"

// DefaultLang is the fallback language.
const DefaultLang = "en"

var tables = map[string]map[string]string{
	"en": en,
	"fr": fr,
	"es": es,
	"tr": tr,
}

// Languages returns the supported language codes.
func Languages() []string {
	return []string{"en", "fr", "es", "tr"}
}

// Supported reports whether lang has a message table.
func Supported(lang string) bool {
	_, ok := tables[lang]
	return ok
}

// Lookup resolves key in lang, falling back to English, then to the key
// itself.
func Lookup(lang, key string) string {
	if table, ok := tables[normalize(lang)]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := en[key]; ok {
		return msg
	}
	return key
}

// Match picks the first supported language from an Accept-Language header
// value, defaulting to English. Quality factors are ignored; order wins.
func Match(acceptLanguage string) string {
	for _, part := range strings.Split(acceptLanguage, ",") {
		lang := normalize(part)
		if Supported(lang) {
			return lang
		}
	}
	return DefaultLang
}

func normalize(lang string) string {
	lang = strings.TrimSpace(lang)
	if i := strings.IndexAny(lang, ";-_"); i >= 0 {
		lang = lang[:i]
	}
	return strings.ToLower(lang)
}
