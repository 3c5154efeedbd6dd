// Package ui has the markup components shared by every admin page.
package ui

import (
	"html/template"
	"io"
	"strings"
)

var modalTmpl = template.Must(template.New("modal").Parse(`<div class="modal-overlay" role="dialog" aria-modal="true" aria-labelledby="modal-title">
  <div class="modal-panel">
    <div class="modal-header">
      <h3 id="modal-title">{{.Title}}</h3>
      <form method="post" action="{{.CloseURL}}" class="modal-close">
        {{if .CSRFToken}}<input type="hidden" name="csrf" value="{{.CSRFToken}}">{{end}}
        <button type="submit" aria-label="Close">&times;</button>
      </form>
    </div>
    <div class="modal-body">{{.Body}}</div>
  </div>
</div>`))

// Modal is a stateless overlay dialog. CloseURL receives a POST when the
// close button is pressed.
type Modal struct {
	Open      bool
	Title     string
	CloseURL  string
	CSRFToken string
	Body      template.HTML
}

// Render writes nothing at all when the modal is closed.
func (m Modal) Render(w io.Writer) error {
	if !m.Open {
		return nil
	}
	return modalTmpl.Execute(w, m)
}

func (m Modal) HTML() template.HTML {
	var b strings.Builder
	if err := m.Render(&b); err != nil {
		return ""
	}
	return template.HTML(b.String())
}
