package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"

	"devevents/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// templateRenderer implements domain.EmailTemplateRenderer from embedded
// template files. Each email name maps to three files: <name>_subject.txt,
// <name>.txt, and <name>.html. All templates parse once, up front, so a
// broken template surfaces on the first Render instead of per send.
type templateRenderer struct {
	html     *template.Template
	text     *texttemplate.Template
	parseErr error
}

func NewTemplateRenderer() domain.EmailTemplateRenderer {
	r := &templateRenderer{}
	r.html, r.parseErr = template.ParseFS(templateFS, "templates/*.html")
	if r.parseErr == nil {
		r.text, r.parseErr = texttemplate.ParseFS(templateFS, "templates/*.txt")
	}
	return r
}

func (r *templateRenderer) Render(templateName string, data interface{}) (subject, htmlBody, textBody string, err error) {
	if r.parseErr != nil {
		return "", "", "", fmt.Errorf("email templates failed to parse: %w", r.parseErr)
	}

	subject, err = r.execText(templateName+"_subject.txt", data)
	if err != nil {
		return "", "", "", fmt.Errorf("render subject for %q: %w", templateName, err)
	}
	textBody, err = r.execText(templateName+".txt", data)
	if err != nil {
		return "", "", "", fmt.Errorf("render text body for %q: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := r.html.ExecuteTemplate(&buf, templateName+".html", data); err != nil {
		return "", "", "", fmt.Errorf("render html body for %q: %w", templateName, err)
	}
	return strings.TrimSpace(subject), buf.String(), textBody, nil
}

func (r *templateRenderer) execText(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := r.text.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
