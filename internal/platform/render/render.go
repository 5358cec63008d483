package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"

	apperr "github.com/yungbote/deliverysla-backend/internal/pkg/errors"
)

//go:embed templates
var templateFS embed.FS

// Renderer turns a template id such as "mail/deliverable-sla.html" and its
// payload into an HTML body.
type Renderer interface {
	Render(templateID string, payload map[string]any) (string, error)
}

type renderer struct {
	pages map[string]*template.Template
}

func New() (Renderer, error) {
	root, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	return NewFromFS(root)
}

// NewFromFS expects layout.html at the root of fsys and one page per file
// under mail/.
func NewFromFS(fsys fs.FS) (Renderer, error) {
	layout, err := template.New("layout.html").Option("missingkey=zero").ParseFS(fsys, "layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	files, err := fs.Glob(fsys, "mail/*.html")
	if err != nil {
		return nil, err
	}
	pages := make(map[string]*template.Template, len(files))
	for _, f := range files {
		page, err := template.Must(layout.Clone()).ParseFS(fsys, f)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", f, err)
		}
		pages[path.Clean(f)] = page
	}
	return &renderer{pages: pages}, nil
}

func (r *renderer) Render(templateID string, payload map[string]any) (string, error) {
	id := path.Clean(strings.TrimPrefix(strings.TrimSpace(templateID), "/"))
	page, ok := r.pages[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", apperr.ErrUnknownTemplate, templateID)
	}
	if payload == nil {
		payload = map[string]any{}
	}
	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, "layout", payload); err != nil {
		return "", fmt.Errorf("render %s: %w", id, err)
	}
	return buf.String(), nil
}

// Templates lists the registered template ids.
func (r *renderer) Templates() []string {
	out := make([]string, 0, len(r.pages))
	for id := range r.pages {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
