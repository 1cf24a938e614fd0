// Package searchurl builds and rewrites marketplace links for card results:
// search pages get the "1st edition" text and the in-stock filter, product
// pages only get the filter, and partner redirects are unwrapped.
package searchurl

import (
	"net/url"
	"strings"
)

// FirstEditionSuffix is appended to the free-text query when 1st edition
// printings are requested.
const FirstEditionSuffix = " 1st edition"

const (
	productPathMarker = "/product/"
	partnerHost       = "partner.tcgplayer.com"
)

type Builder struct {
	Base         string
	InStockParam string
	InStockValue string
}

// BuildSearchURL returns Base when there is nothing to put in the query string.
func (b Builder) BuildSearchURL(query string, firstEdition, inStock bool) string {
	if firstEdition && query != "" {
		query += FirstEditionSuffix
	}
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if inStock {
		params.Set(b.InStockParam, b.InStockValue)
	}
	if len(params) == 0 {
		return b.Base
	}
	return b.Base + "?" + params.Encode()
}

// AugmentURL applies the flags to an existing link. Product pages have no
// search text, so only the in-stock pair is added to them. Calling it twice
// with firstEdition set appends the suffix twice. Links that do not parse
// still get their query rewritten.
func (b Builder) AugmentURL(raw string, firstEdition, inStock bool) string {
	u, err := url.Parse(raw)
	if err != nil {
		return b.augmentUnparsed(raw, firstEdition, inStock)
	}
	u.RawQuery = b.rewriteQuery(u.RawQuery, strings.Contains(raw, productPathMarker), firstEdition, inStock)
	return u.String()
}

// augmentUnparsed edits the text after the first "?" and leaves the rest as is.
func (b Builder) augmentUnparsed(raw string, firstEdition, inStock bool) string {
	rest, fragment, hasFragment := strings.Cut(raw, "#")
	prefix, query, _ := strings.Cut(rest, "?")

	out := prefix
	if q := b.rewriteQuery(query, strings.Contains(raw, productPathMarker), firstEdition, inStock); q != "" {
		out += "?" + q
	}
	if hasFragment {
		out += "#" + fragment
	}
	return out
}

func (b Builder) rewriteQuery(rawQuery string, isProduct, firstEdition, inStock bool) string {
	qs := parseQuery(rawQuery)
	if firstEdition && !isProduct && qs.Get("q") != "" {
		qs.Set("q", qs.Get("q")+FirstEditionSuffix)
	}
	if inStock {
		qs.Set(b.InStockParam, b.InStockValue)
	}
	return qs.Encode()
}

// parseQuery is url.ParseQuery that keeps badly escaped keys and values as
// literal text instead of dropping the pair.
func parseQuery(rawQuery string) url.Values {
	qs := url.Values{}
	for _, pair := range strings.Split(rawQuery, "&") {
		key, value, _ := strings.Cut(pair, "=")
		key = unescape(key)
		if key == "" {
			continue
		}
		qs.Add(key, unescape(value))
	}
	return qs
}

func unescape(s string) string {
	if v, err := url.QueryUnescape(s); err == nil {
		return v
	}
	return strings.ReplaceAll(s, "+", " ")
}

// ProductSearchURL is the fallback link for a card with no product page.
func (b Builder) ProductSearchURL(name string, firstEdition bool) string {
	term := name
	if firstEdition {
		term += FirstEditionSuffix
	}
	return b.Base + "?q=" + url.QueryEscape(term)
}

// ExtractProductURL recovers the canonical product link from a set URL.
// Canonical product links come back unchanged, partner redirects are decoded
// from their "u" parameter, anything else is reported as absent.
func ExtractProductURL(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	if strings.Contains(raw, "tcgplayer.com"+productPathMarker) && !strings.Contains(raw, "partner.") {
		if !isAbsolute(raw) {
			return "", false
		}
		return raw, true
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host != partnerHost || u.RawQuery == "" {
		return "", false
	}
	target := u.Query().Get("u")
	if target == "" {
		return "", false
	}
	// some partner links double-encode the target
	if unescaped, err := url.PathUnescape(target); err == nil {
		target = unescaped
	}
	if !isAbsolute(target) {
		return "", false
	}
	return target, true
}

func isAbsolute(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.IsAbs() && u.Host != ""
}
