// Package view renders the HTML pages of the application from embedded
// templates. Handlers hand it plain data; no other package touches markup.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/tinyapp/linkshrt/internal/links"
	"github.com/tinyapp/linkshrt/internal/user"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

// Page carries the data every page shares.
type Page struct {
	// User is the logged-in account, nil for anonymous visitors.
	User *user.User
}

// IndexData feeds the links listing page.
type IndexData struct {
	Page
	Links []LinkItem
}

// LinkItem is one row of the listing page.
type LinkItem struct {
	ShortID  string
	ShortURL string
	LongURL  string
}

// ShowData feeds the single-link detail page.
type ShowData struct {
	Page
	Link LinkItem
}

// View renders named page templates.
type View struct {
	templates *template.Template
}

// New parses the embedded templates.
func New() (*View, error) {
	templates, err := template.ParseFS(templatesFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("error parsing page templates: %w", err)
	}

	return &View{templates: templates}, nil
}

// Render writes the named page with the given status code.
func (v *View) Render(response http.ResponseWriter, status int, name string, data interface{}) error {
	response.Header().Set("Content-Type", "text/html; charset=utf-8")
	response.WriteHeader(status)

	return v.templates.ExecuteTemplate(response, name, data)
}

// NewLinkItem builds a listing row from a stored record and the resolved
// public short URL.
func NewLinkItem(link links.Link, shortURL string) LinkItem {
	return LinkItem{
		ShortID:  link.ShortID,
		ShortURL: shortURL,
		LongURL:  link.LongURL,
	}
}
