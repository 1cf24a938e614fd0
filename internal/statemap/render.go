package statemap

import (
	"embed"
	"encoding/json"
	"html/template"
	"io"

	"github.com/paulmach/orb/geojson"
)

//go:embed templates/map.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/map.html"))

const defaultZoom = 7

type Style struct {
	FillColor   string
	Color       string
	Weight      int
	FillOpacity float64
}

var stateStyle = Style{FillColor: "#3388ff", Color: "#0066cc", Weight: 2, FillOpacity: 0.2}

// Page is everything the map needs. States may be nil or empty, in which case
// no polygon is drawn.
type Page struct {
	Lat, Lon float64
	State    string
	City     string
	Store    string
	Popup    string
	States   *geojson.FeatureCollection
}

type pageData struct {
	Lat, Lon     float64
	Zoom         int
	State        string
	City         string
	Store        string
	Popup        template.HTML
	Tooltip      string
	StateGeoJSON template.JS
	Style        Style
}

func Render(w io.Writer, p Page) error {
	data := pageData{
		Lat:     p.Lat,
		Lon:     p.Lon,
		Zoom:    defaultZoom,
		State:   p.State,
		City:    p.City,
		Store:   p.Store,
		Popup:   template.HTML(p.Popup), // built by PopupHTML, which escapes every value
		Tooltip: p.Store + " – " + p.City,
		Style:   stateStyle,
	}
	if p.States != nil && len(p.States.Features) > 0 {
		b, err := json.Marshal(p.States)
		if err != nil {
			return err
		}
		data.StateGeoJSON = template.JS(b)
	}
	return pageTmpl.Execute(w, data)
}
