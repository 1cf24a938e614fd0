package web

import (
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return "$" + d.StringFixed(2) },
}

// pages are parsed once; each one pairs the layout with its own content block.
var pages = map[string]*template.Template{
	"index":   parsePage("index.html"),
	"results": parsePage("results.html"),
}

func parsePage(name string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name))
}

func render(w http.ResponseWriter, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages[page].ExecuteTemplate(w, "layout", data); err != nil {
		log.Printf("[web] render %s: %v", page, err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}
