package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
)

//go:embed *.tmpl
var fs embed.FS

// InquiryReceived notifies a realtor that a buyer asked about one of
// their listings.
const InquiryReceived = "inquiry_received"

// Render returns the subject, plain-text, and HTML bodies for a named
// template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case InquiryReceived:
		subject = fmt.Sprintf("New inquiry about your listing #%v", data["HomeID"])
		text = fmt.Sprintf("%v is interested in your listing #%v:\n\n%v",
			data["BuyerName"], data["HomeID"], data["Text"])
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}

	t, err := htmpl.ParseFS(fs, name+".tmpl")
	if err != nil {
		return "", "", "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", "", "", err
	}
	return subject, text, buf.String(), nil
}
