package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

const (
	subjectPrefix = "[Berrow Books] "
	dateLayout    = "2006-01-02"
)

const layout = `{{define "layout"}}<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #333;">{{template "heading" .}}</h1>
  {{template "body" .}}
</div>{{end}}
{{define "row"}}<tr>
  <td style="padding: 8px; border: 1px solid #ddd; font-weight: bold;">{{.Label}}</td>
  <td style="padding: 8px; border: 1px solid #ddd;">{{.Value}}</td>
</tr>{{end}}`

var (
	newRequestTmpl = mustTemplate("new_request", `
{{define "heading"}}New book request{{end}}
{{define "body"}}<p>A new book request has been submitted.</p>
<table style="border-collapse: collapse; width: 100%;">
{{template "row" row "Room" .RoomName}}
{{template "row" row "Book title" .BookTitle}}
{{template "row" row "Requester" .RequesterEmail}}
</table>
<p style="margin-top: 20px;">Please handle it from the dashboard.</p>{{end}}`)

	shippedTmpl = mustTemplate("shipped", `
{{define "heading"}}Your book has been sent{{end}}
{{define "body"}}<p>The book you requested is on its way.</p>
<table style="border-collapse: collapse; width: 100%;">
{{template "row" row "Book title" .BookTitle}}
{{template "row" row "Return due" .ReturnDueDate}}
</table>
<p style="margin-top: 20px;">Please confirm once it arrives.</p>{{end}}`)

	returnCompleteTmpl = mustTemplate("return_complete", `
{{define "heading"}}Return complete{{end}}
{{define "body"}}<p>The return of the following book is complete. Thank you!</p>
<table style="border-collapse: collapse; width: 100%;">
{{template "row" row "Book title" .BookTitle}}
</table>{{end}}`)

	reminderTmpl = mustTemplate("reminder", `
{{define "heading"}}Return due date reminder{{end}}
{{define "body"}}<p>The return due date of the following book is approaching.</p>
<table style="border-collapse: collapse; width: 100%;">
{{template "row" row "Book title" .BookTitle}}
{{template "row" row "Return due" .ReturnDueDate}}
</table>
<p style="margin-top: 20px;">Please return it by the due date.</p>{{end}}`)
)

type tableRow struct {
	Label string
	Value string
}

func mustTemplate(name, body string) *template.Template {
	funcs := template.FuncMap{
		"row": func(label, value string) tableRow { return tableRow{Label: label, Value: value} },
	}

	return template.Must(template.Must(template.New(name).Funcs(funcs).Parse(layout)).Parse(body))
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer

	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("render %s: %w", tmpl.Name(), err)
	}

	return buf.String(), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "not set"
	}

	return t.Format(dateLayout)
}
