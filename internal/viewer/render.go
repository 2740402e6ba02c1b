package viewer

import (
	"embed"
	htmltemplate "html/template"
	"io"
	texttemplate "text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "templates/page.html.tmpl")
	if err != nil {
		return nil, err
	}
	text, err := texttemplate.ParseFS(templateFS, "templates/page.txt.tmpl")
	if err != nil {
		return nil, err
	}
	return &Renderer{html: html, text: text}, nil
}

// Head writes the document preamble; title is the account id.
func (r *Renderer) Head(w io.Writer, accountID string) error {
	return r.html.ExecuteTemplate(w, "head", accountID)
}

// Loading writes the placeholder shown until Body replaces it.
func (r *Renderer) Loading(w io.Writer) error {
	return r.html.ExecuteTemplate(w, "loading", nil)
}

func (r *Renderer) Body(w io.Writer, p Page) error {
	return r.html.ExecuteTemplate(w, "body", p)
}

func (r *Renderer) Text(w io.Writer, p Page) error {
	return r.text.ExecuteTemplate(w, "text", p)
}
