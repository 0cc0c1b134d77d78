package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// resolver is one step of a field's resolution chain. It returns the
// resolved value and whether it produced one.
type resolver func() (string, bool)

// resolve walks the chain in order and returns the first non-empty result,
// or the named default when every step misses.
func resolve(def string, chain ...resolver) string {
	for _, step := range chain {
		if v, ok := step(); ok {
			return v
		}
	}
	return def
}

// fromText resolves to the trimmed text of the first selector match.
func fromText(root *goquery.Selection, selector string) resolver {
	return func() (string, bool) {
		text := strings.TrimSpace(root.Find(selector).First().Text())
		return text, text != ""
	}
}

// fromAttr resolves to an attribute of the first selector match.
func fromAttr(root *goquery.Selection, selector, attr string) resolver {
	return func() (string, bool) {
		val, exists := root.Find(selector).First().Attr(attr)
		val = strings.TrimSpace(val)
		return val, exists && val != ""
	}
}

// fromRegex resolves to the given capture group of the first pattern match.
func fromRegex(text string, pattern *regexp.Regexp, group int) resolver {
	return func() (string, bool) {
		m := pattern.FindStringSubmatch(text)
		if m == nil || group >= len(m) {
			return "", false
		}
		val := strings.TrimSpace(m[group])
		return val, val != ""
	}
}

// flatten collapses whitespace runs so regex fallbacks see the tile the way
// a rendered page reads.
func flatten(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
