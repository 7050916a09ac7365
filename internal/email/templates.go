// Package email delivers booth alert emails over SMTP via go-mail.
package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title   string
	Heading string
}

type hotLeadEmailData struct {
	baseEmailData
	LeadName     string
	BusinessName string
	Score        int
	Grade        string
	Tier         string
	ContactEmail string
	ContactPhone string
	Brands       string
	CapturedAt   string
}

func renderEmailTemplate(name string, data any) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render email template %s: %w", name, err)
	}
	return buf.String(), nil
}
