// Package web embeds the sign-up and password reset pages and their browser assets.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// RegisterPage is the template name of the sign-up page.
const RegisterPage = "register.html"

// RegisterPageData contains data for the sign-up page template.
type RegisterPageData struct {
	Name          string
	Email         string
	MinLength     int
	StrengthLabel string
	StrengthClass string
	Error         string
	Registered    bool
}

// ResetPasswordPage is the template name of the password reset page.
const ResetPasswordPage = "reset_password.html"

// ResetPasswordPageData contains data for the password reset page template.
type ResetPasswordPageData struct {
	Token         string
	MinLength     int
	StrengthLabel string
	StrengthClass string
	Error         string
	Done          bool
}

// Renderer handles page template rendering.
type Renderer struct {
	templates *template.Template
}

// NewRenderer creates a new template renderer.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Templates returns the parsed templates, suitable for gin's SetHTMLTemplate.
func (r *Renderer) Templates() *template.Template {
	return r.templates
}

// Render renders the named template to a string.
func (r *Renderer) Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render HTML template %s: %w", name, err)
	}
	return buf.String(), nil
}

// StaticFS returns the embedded static assets rooted at the static directory.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return sub
}
