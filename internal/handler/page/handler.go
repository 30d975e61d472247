package page

import (
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	sistermodel "github.com/phigamnu/sistergreet/internal/model/sister"
	"github.com/phigamnu/sistergreet/internal/service/roster"
)

const greetTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{if .Found}}{{.Sister.Greeting}}{{else}}Sister not found{{end}}</title>
</head>
<body>
{{if .Found}}
<h1>{{.Sister.Greeting}}</h1>
{{range .Paragraphs}}<p>{{.}}</p>
{{end}}{{range .Sister.Images}}{{if .}}<img src="{{.}}" alt="">
{{end}}{{end}}
{{else}}
<h1>Sister not found</h1>
<p>We couldn't find a page for that name. Check the link you were sent.</p>
{{end}}
</body>
</html>
`

// Handler renders the greeting page for a ?name= query.
type Handler struct {
	rosterSvc *roster.Service
	tmpl      *template.Template
}

// New creates the page handler.
func New(rosterSvc *roster.Service) *Handler {
	return &Handler{
		rosterSvc: rosterSvc,
		tmpl:      template.Must(template.New("greet").Parse(greetTemplate)),
	}
}

// RegisterRoutes registers the page route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/greet", h.handleGreet)
}

type greetData struct {
	Found      bool
	Sister     sistermodel.Sister
	Paragraphs []string
}

// handleGreet always renders something: an unknown or missing name gets the
// not-found state, never an error page.
func (h *Handler) handleGreet(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")

	data := greetData{}
	if record, ok := h.rosterSvc.Find(r.Context(), name); ok {
		data.Found = true
		data.Sister = record
		data.Paragraphs = splitParagraphs(record.Message)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if !data.Found {
		w.WriteHeader(http.StatusNotFound)
	}
	if err := h.tmpl.Execute(w, data); err != nil {
		log.Printf("[page] render failed: %v", err)
	}
}

// splitParagraphs turns message line breaks into paragraphs, dropping blank
// lines.
func splitParagraphs(message string) []string {
	lines := strings.Split(message, "\n")
	paragraphs := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}
	return paragraphs
}
