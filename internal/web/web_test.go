package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardscout/internal/demo"
	"cardscout/internal/model"
	"cardscout/internal/search"
	"cardscout/internal/searchurl"
)

const searchBase = "https://www.tcgplayer.com/search/yugioh/product"

type emptyFetcher struct{}

func (emptyFetcher) Search(ctx context.Context, query string, firstEdition, inStock bool) []model.CardRow {
	return nil
}

type stubHistory struct {
	snapshots []model.PriceSnapshot
	err       error
	name      string
	limit     int
}

func (s *stubHistory) History(ctx context.Context, name string, limit int) ([]model.PriceSnapshot, error) {
	s.name, s.limit = name, limit
	return s.snapshots, s.err
}

func newTestRouter(history HistoryStore) http.Handler {
	cards := demo.MustDefault()
	svc := &search.Service{
		Remote: emptyFetcher{},
		Demo:   cards,
		URLs:   searchurl.Builder{Base: searchBase, InStockParam: "availability", InStockValue: "in_stock"},
	}
	return NewRouter(Deps{Search: svc, Demo: cards, History: history})
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func document(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return doc
}

func TestHealthz(t *testing.T) {
	rec := get(t, newTestRouter(nil), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestIndexListsDemoCards(t *testing.T) {
	doc := document(t, get(t, newTestRouter(nil), "/"))

	options := doc.Find("#demo-select option")
	assert.Equal(t, 11, options.Length())
	assert.Equal(t, "Breaker the Magical Warrior", options.First().AttrOr("value", ""))
}

func TestSearchPageFallsBackToDemo(t *testing.T) {
	doc := document(t, get(t, newTestRouter(nil), "/search?q=Jinzo"))

	rows := doc.Find("#results tr.card")
	require.Equal(t, 1, rows.Length())
	assert.Equal(t, "Jinzo", rows.Find("td.name").Text())
	assert.Equal(t, "$37.70", rows.Find("td.market").Text())
	assert.Equal(t, "https://www.tcgplayer.com/product/22111/yugioh-pharaohs-servant-jinzo", rows.Find("a.buy").AttrOr("href", ""))
	assert.Equal(t, searchBase+"?q=Jinzo", doc.Find("#tcgplayer-link").AttrOr("href", ""))
	assert.Equal(t, "Jinzo", doc.Find(`input[name="q"]`).AttrOr("value", ""))
}

func TestSearchPageFiltersAndSorts(t *testing.T) {
	doc := document(t, get(t, newTestRouter(nil), "/search?min_price=5&max_price=10&sort=name"))

	var names []string
	doc.Find("#results td.name").Each(func(_ int, s *goquery.Selection) {
		names = append(names, s.Text())
	})
	assert.Equal(t, []string{"Barrel Dragon", "Celtic Guardian", "Curse of Dragon", "Cyberdark Edge (UTR)"}, names)
	assert.Equal(t, "5", doc.Find(`input[name="min_price"]`).AttrOr("value", ""))
	assert.Equal(t, "name", doc.Find(`select[name="sort"] option[selected]`).AttrOr("value", ""))
	assert.Equal(t, searchBase, doc.Find("#tcgplayer-link").AttrOr("href", ""))
}

func TestSearchPageFlags(t *testing.T) {
	doc := document(t, get(t, newTestRouter(nil), "/search?q=Jinzo&first_edition=on&in_stock=on"))

	assert.Equal(t, searchBase+"?availability=in_stock&q=Jinzo+1st+edition", doc.Find("#tcgplayer-link").AttrOr("href", ""))
	assert.Equal(t, "https://www.tcgplayer.com/product/22111/yugioh-pharaohs-servant-jinzo?availability=in_stock",
		doc.Find("#results a.buy").AttrOr("href", ""))
	_, checked := doc.Find(`input[name="first_edition"]`).Attr("checked")
	assert.True(t, checked)
}

func TestSearchPageNoMatches(t *testing.T) {
	doc := document(t, get(t, newTestRouter(nil), "/search?q=kuriboh"))
	assert.Equal(t, 0, doc.Find("#results").Length())
	assert.Equal(t, 1, doc.Find("p.empty").Length())
}

func TestAPISearch(t *testing.T) {
	rec := get(t, newTestRouter(nil), "/api/search?q=dragon&sort=price_desc")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res search.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, search.SourceDemo, res.Source)
	assert.True(t, res.HasFilters)
	require.NotEmpty(t, res.Rows)
	for i := 1; i < len(res.Rows); i++ {
		assert.False(t, res.Rows[i].MarketPrice.GreaterThan(res.Rows[i-1].MarketPrice))
	}

	empty := get(t, newTestRouter(nil), "/api/search?q=kuriboh")
	assert.Contains(t, empty.Body.String(), `"rows":[]`)
}

func TestHistory(t *testing.T) {
	store := &stubHistory{snapshots: []model.PriceSnapshot{{
		Name:        "Jinzo",
		MarketPrice: decimal.RequireFromString("37.70"),
		RecordedAt:  time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}}}
	rec := get(t, newTestRouter(store), "/api/cards/Jinzo/history?limit=5")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Name      string                `json:"name"`
		Snapshots []model.PriceSnapshot `json:"snapshots"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Jinzo", body.Name)
	require.Len(t, body.Snapshots, 1)
	assert.True(t, body.Snapshots[0].MarketPrice.Equal(decimal.RequireFromString("37.7")))
	assert.Equal(t, 5, store.limit)
}

func TestHistoryLimitIsCapped(t *testing.T) {
	store := &stubHistory{}
	rec := get(t, newTestRouter(store), "/api/cards/Jinzo/history?limit=100000000")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, maxHistoryLimit, store.limit)
	assert.Contains(t, rec.Body.String(), `"snapshots":[]`)
}

func TestHistoryErrors(t *testing.T) {
	failing := &stubHistory{err: errors.New("connection refused")}
	assert.Equal(t, http.StatusInternalServerError, get(t, newTestRouter(failing), "/api/cards/Jinzo/history").Code)

	assert.Equal(t, http.StatusNotFound, get(t, newTestRouter(nil), "/api/cards/Jinzo/history").Code)
}
