package searchurl

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "https://www.tcgplayer.com/search/yugioh/product"

func testBuilder() Builder {
	return Builder{Base: base, InStockParam: "availability", InStockValue: "in_stock"}
}

func queryOf(t *testing.T, raw string) url.Values {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u.Query()
}

func TestBuildSearchURL(t *testing.T) {
	b := testBuilder()

	testCases := []struct {
		description  string
		query        string
		firstEdition bool
		inStock      bool
		want         string
	}{
		{"empty params return bare base", "", false, false, base},
		{"first edition alone with empty query returns bare base", "", true, false, base},
		{"plain query", "Dark Magician", false, false, base + "?q=Dark+Magician"},
		{"first edition suffix", "Jinzo", true, false, base + "?q=Jinzo+1st+edition"},
		{"in stock only", "", false, true, base + "?availability=in_stock"},
		{"both flags", "Jinzo", true, true, base + "?availability=in_stock&q=Jinzo+1st+edition"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.want, b.BuildSearchURL(tc.query, tc.firstEdition, tc.inStock))
		})
	}
}

func TestBuildSearchURLFirstEditionAlwaysEndsWithSuffix(t *testing.T) {
	b := testBuilder()
	for _, q := range []string{"a", "Blue-Eyes White Dragon", "Yubel - The Ultimate Nightmare", "100% & more", "カード"} {
		got := queryOf(t, b.BuildSearchURL(q, true, false)).Get("q")
		assert.True(t, strings.HasSuffix(got, FirstEditionSuffix), "q=%q", got)
	}
}

func TestAugmentURLProductPagesNeverGetSearchText(t *testing.T) {
	b := testBuilder()
	for _, raw := range []string{
		"https://www.tcgplayer.com/product/22111/yugioh-pharaohs-servant-jinzo",
		"https://www.tcgplayer.com/product/22111/jinzo?q=Jinzo",
		"https://www.tcgplayer.com/product/1?Language=English",
	} {
		got := b.AugmentURL(raw, true, false)
		assert.Equal(t, queryOf(t, raw), queryOf(t, got), raw)
		assert.NotContains(t, got, "1st")
	}
}

func TestAugmentURLSearchPage(t *testing.T) {
	b := testBuilder()

	got := b.AugmentURL(base+"?q=Jinzo", true, false)
	assert.Equal(t, "Jinzo 1st edition", queryOf(t, got).Get("q"))

	noQuery := b.AugmentURL(base, true, false)
	assert.Equal(t, base, noQuery)
}

// rewrittenQuery reads the query of an AugmentURL result without requiring the
// rest of the link to parse.
func rewrittenQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	_, query, _ := strings.Cut(raw, "?")
	qs, err := url.ParseQuery(query)
	require.NoError(t, err, raw)
	return qs
}

func TestAugmentURLInStockAlwaysSet(t *testing.T) {
	b := testBuilder()
	for _, raw := range []string{
		base,
		base + "?q=Jinzo",
		base + "?availability=sold_out&q=x",
		base + "?q=100%",
		"https://www.tcgplayer.com/product/22111/jinzo",
		"https://www.tcgplayer.com/product/1/a%zz",
	} {
		for _, firstEdition := range []bool{false, true} {
			got := rewrittenQuery(t, b.AugmentURL(raw, firstEdition, true))
			assert.Equal(t, []string{"in_stock"}, got["availability"], raw)
		}
	}
}

func TestAugmentURLKeepsBadlyEscapedQuery(t *testing.T) {
	b := testBuilder()

	got := b.AugmentURL(base+"?q=100%", true, true)
	qs := rewrittenQuery(t, got)
	assert.Equal(t, "100% 1st edition", qs.Get("q"))
	assert.Equal(t, "in_stock", qs.Get("availability"))
}

func TestAugmentURLUnparseableLink(t *testing.T) {
	b := testBuilder()

	assert.Equal(t, "https://www.tcgplayer.com/product/1/a%zz?availability=in_stock",
		b.AugmentURL("https://www.tcgplayer.com/product/1/a%zz", true, true))
	assert.Equal(t, "https://www.tcgplayer.com/search/a%zz?availability=in_stock&q=Jinzo+1st+edition#top",
		b.AugmentURL("https://www.tcgplayer.com/search/a%zz?q=Jinzo#top", true, true))
	assert.Equal(t, "https://www.tcgplayer.com/product/1/a%zz",
		b.AugmentURL("https://www.tcgplayer.com/product/1/a%zz", true, false))
}

func TestAugmentURLTwiceDoublesSuffix(t *testing.T) {
	b := testBuilder()
	once := b.AugmentURL(base+"?q=Jinzo", true, false)
	twice := b.AugmentURL(once, true, false)
	assert.Equal(t, "Jinzo 1st edition 1st edition", queryOf(t, twice).Get("q"))
}

func TestProductSearchURL(t *testing.T) {
	b := testBuilder()
	assert.Equal(t, base+"?q=Jinzo", b.ProductSearchURL("Jinzo", false))
	assert.Equal(t, base+"?q=Jinzo+1st+edition", b.ProductSearchURL("Jinzo", true))
}

func TestExtractProductURL(t *testing.T) {
	testCases := []struct {
		description string
		raw         string
		want        string
		ok          bool
	}{
		{
			description: "partner redirect is unwrapped",
			raw:         "https://partner.tcgplayer.com/c/4910/1830156/21018?u=https%3A%2F%2Fwww.tcgplayer.com%2Fproduct%2F123",
			want:        "https://www.tcgplayer.com/product/123",
			ok:          true,
		},
		{
			description: "canonical product url is unchanged",
			raw:         "https://www.tcgplayer.com/product/22111/yugioh-pharaohs-servant-jinzo",
			want:        "https://www.tcgplayer.com/product/22111/yugioh-pharaohs-servant-jinzo",
			ok:          true,
		},
		{description: "empty", raw: "", ok: false},
		{description: "relative canonical url", raw: "/tcgplayer.com/product/1", ok: false},
		{description: "scheme-less canonical url", raw: "www.tcgplayer.com/product/123", ok: false},
		{description: "partner without target", raw: "https://partner.tcgplayer.com/c/1?x=1", ok: false},
		{description: "partner with relative target", raw: "https://partner.tcgplayer.com/c/1?u=%2Fproduct%2F1", ok: false},
		{description: "unrelated site", raw: "https://example.com/cards/1", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got, ok := ExtractProductURL(tc.raw)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}
