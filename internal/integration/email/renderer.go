package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/passmeter/backend/internal/domain/entity"
	domainerror "github.com/passmeter/backend/internal/domain/error"
)

//go:embed templates/*.html templates/*.txt
var templateFS embed.FS

// PasswordResetData contains data for the password reset email template.
type PasswordResetData struct {
	UserName  string
	ResetURL  string
	ExpiresIn string
}

// Renderer renders email bodies from the embedded templates.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewRenderer parses the embedded email templates.
func NewRenderer() (*Renderer, error) {
	htmlTmpl, err := htmltemplate.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML email templates: %w", err)
	}
	textTmpl, err := texttemplate.ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text email templates: %w", err)
	}
	return &Renderer{html: htmlTmpl, text: textTmpl}, nil
}

// Render produces the HTML and plain text bodies for a queued job.
func (r *Renderer) Render(job *entity.EmailJob) (html string, text string, err error) {
	var data any
	switch job.TemplateType {
	case entity.TemplatePasswordReset:
		data = PasswordResetData{
			UserName:  job.TemplateData["user_name"],
			ResetURL:  job.TemplateData["reset_url"],
			ExpiresIn: job.TemplateData["expires_in"],
		}
	default:
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			fmt.Sprintf("unknown template type %q", job.TemplateType),
			domainerror.ErrInvalidTemplate,
		)
	}

	name := string(job.TemplateType)
	var htmlBuf, textBuf bytes.Buffer
	if err := r.html.ExecuteTemplate(&htmlBuf, name+".html", data); err != nil {
		return "", "", fmt.Errorf("failed to render HTML template %s: %w", name, err)
	}
	if err := r.text.ExecuteTemplate(&textBuf, name+".txt", data); err != nil {
		return "", "", fmt.Errorf("failed to render text template %s: %w", name, err)
	}
	return htmlBuf.String(), textBuf.String(), nil
}
