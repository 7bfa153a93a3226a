package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// previewTemplate is the self-contained HTML page used for preview and as
// the input to the PDF exporter. Styling is deliberately minimal; visual
// theming lives client-side.
const previewTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Name}}</title>
<style>
body { font-family: Georgia, 'Times New Roman', serif; color: #1a1a1a; margin: 40px 48px; font-size: 11pt; }
h1 { font-size: 20pt; margin: 0 0 2px; }
.contact { color: #444; font-size: 9.5pt; margin-bottom: 14px; }
.summary { margin-bottom: 16px; }
h2 { font-size: 12pt; text-transform: uppercase; letter-spacing: 1px; border-bottom: 1px solid #999; padding-bottom: 2px; margin: 18px 0 8px; }
.item { margin-bottom: 10px; }
.item-head { display: flex; justify-content: space-between; }
.heading { font-weight: bold; }
.subheading { font-style: italic; }
.meta { color: #555; font-size: 9.5pt; }
ul { margin: 4px 0 0 18px; padding: 0; }
li { margin-bottom: 2px; }
</style>
</head>
<body>
<h1>{{.Name}}</h1>
<div class="contact">{{.Contact}}</div>
{{if .Summary}}<div class="summary">{{.Summary}}</div>{{end}}
{{range .Blocks}}
<section>
<h2>{{.Title}}</h2>
{{range .Items}}
<div class="item">
{{if .Heading}}<div class="item-head"><span class="heading">{{.Heading}}</span>{{if .Meta}}<span class="meta">{{.Meta}}</span>{{end}}</div>{{end}}
{{if .Subheading}}<div class="subheading">{{.Subheading}}</div>{{end}}
{{if .Description}}<div>{{.Description}}</div>{{end}}
{{if .Bullets}}<ul>{{range .Bullets}}<li>{{.}}</li>{{end}}</ul>{{end}}
</div>
{{end}}
</section>
{{end}}
</body>
</html>`

var previewTmpl = template.Must(template.New("preview").Parse(previewTemplate))

type previewData struct {
	Name    string
	Contact string
	Summary string
	Blocks  []Block
}

// HTML renders the preview page for a document and its render sequence.
// The sequence is traversed without mutation; rendering is side-effect free.
func HTML(info types.PersonalInfo, seq *Sequence) (string, error) {
	var contact []string
	for _, part := range []string{info.Email, info.Phone, info.Location, info.Website} {
		if part != "" {
			contact = append(contact, part)
		}
	}

	var sb strings.Builder
	err := previewTmpl.Execute(&sb, previewData{
		Name:    info.Name,
		Contact: strings.Join(contact, " · "),
		Summary: info.Summary,
		Blocks:  seq.Blocks(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render preview: %w", err)
	}
	return sb.String(), nil
}
