package statemap

import (
	"html"
	"strings"
	"unicode"

	"cardscout/internal/model"
)

var popupSkip = map[string]bool{"store": true, "city": true, "state": true}

// PopupHTML lists store, city and state, then every other non-empty metric in
// sheet order. All text is escaped.
func PopupHTML(row model.StoreRow, store, city, state string) string {
	lines := []string{
		"<b>Store:</b> " + html.EscapeString(store),
		"<b>City:</b> " + html.EscapeString(city),
		"<b>State:</b> " + html.EscapeString(state),
	}
	if len(row.Columns) == 0 {
		return strings.Join(lines, "<br>")
	}

	lines = append(lines, "<hr>")
	for _, col := range row.Columns {
		v := row.Values[col]
		if v == "" || popupSkip[strings.ToLower(strings.TrimSpace(col))] {
			continue
		}
		lines = append(lines, "<b>"+html.EscapeString(label(col))+":</b> "+html.EscapeString(v))
	}
	return strings.Join(lines, "<br>")
}

// label turns "weekly_sales" into "Weekly Sales". Every run of letters is
// capitalized on its first letter and lowercased after it.
func label(col string) string {
	col = strings.ReplaceAll(col, "_", " ")
	var b strings.Builder
	prevLetter := false
	for _, r := range col {
		switch {
		case unicode.IsLetter(r) && !prevLetter:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsLetter(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = unicode.IsLetter(r)
	}
	return b.String()
}
