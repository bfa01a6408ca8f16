package meta

import (
	"os"
	"strings"

	"golang.org/x/text/language"
)

// SystemLocale returns the process locale from LC_ALL, LC_MESSAGES or LANG,
// the first one set.
func SystemLocale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// LocaleToLanguage converts a POSIX locale such as "de_DE.UTF-8" to a
// language tag such as "de-DE". It returns "" for empty, "C" and "POSIX"
// locales.
func LocaleToLanguage(locale string) string {
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	switch locale {
	case "", "C", "POSIX":
		return ""
	}
	locale = strings.ReplaceAll(locale, "_", "-")
	tag, err := language.Parse(locale)
	if err != nil {
		return locale
	}
	return tag.String()
}

// detectLanguage resolves the auto-detected page language.
func (r *Registry) detectLanguage() string {
	if r.locale == nil {
		return ""
	}
	return LocaleToLanguage(r.locale())
}
