package render

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/siteforge/internal/render/core"
	"github.com/dshills/siteforge/internal/schema"
)

// WriteNodes emits the HTML for a resolved node list in order.
func WriteNodes(w io.Writer, nodes []*core.Node) error {
	for _, n := range nodes {
		if _, err := io.WriteString(w, NodeHTML(n)); err != nil {
			return err
		}
	}
	return nil
}

// NodeHTML renders one node, wrapper included. Placeholder kinds emit a
// visible-but-inert slot so the editing UI has something to select.
func NodeHTML(n *core.Node) string {
	esc := template.HTMLEscapeString

	switch n.Kind {
	case core.NodeUnknown:
		return fmt.Sprintf(`<div class="sf-placeholder sf-unknown" data-key="%s" data-type="%s"></div>`+"\n",
			esc(n.Key), esc(n.Type))
	case core.NodePending:
		return fmt.Sprintf(`<div class="sf-placeholder sf-pending" data-key="%s" data-type="%s"></div>`+"\n",
			esc(n.Key), esc(n.Type))
	case core.NodeFailed:
		return fmt.Sprintf(`<div class="sf-placeholder sf-failed" data-key="%s" data-type="%s"></div>`+"\n",
			esc(n.Key), esc(n.Type))
	}

	var sb strings.Builder
	sb.WriteString(`<div class="sf-section sf-` + esc(n.Type) + `" data-key="` + esc(n.Key) + `"`)
	if style := styleAttr(n.Styles); style != "" {
		sb.WriteString(` style="` + style + `"`)
	}
	sb.WriteString(">\n")
	sb.WriteString(n.HTML)

	if len(n.Children) > 0 {
		sb.WriteString(`<div class="sf-layout"` + layoutStyle(n.Attrs) + ">\n")
		for _, child := range n.Children {
			sb.WriteString(NodeHTML(child))
		}
		sb.WriteString("</div>\n")
	}

	sb.WriteString("</div>\n")
	return sb.String()
}

// styleAttr serializes resolved wrapper styles. Values are resolver
// output, never raw user input, but they are escaped anyway.
func styleAttr(s core.Styles) string {
	if s.IsZero() {
		return ""
	}
	var parts []string
	add := func(prop, val string) {
		if val != "" {
			parts = append(parts, prop+":"+template.HTMLEscapeString(val))
		}
	}
	add("padding", s.Padding)
	add("margin", s.Margin)
	add("background", s.Background)
	add("max-width", s.MaxWidth)
	add("text-align", s.TextAlign)
	return strings.Join(parts, ";")
}

func layoutStyle(attrs map[string]string) string {
	cols := attrs["columns"]
	if cols == "" || cols == "1" {
		return ""
	}
	style := "display:grid;grid-template-columns:repeat(" + template.HTMLEscapeString(cols) + ",1fr)"
	if gap, ok := spacingTokens[attrs["gap"]]; ok {
		style += ";gap:" + gap
	}
	return ` style="` + style + `"`
}

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en"{{if .Dark}} data-theme="dark"{{end}}>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
{{if .Description}}<meta name="description" content="{{.Description}}">{{end}}
{{if .Favicon}}<link rel="icon" href="{{.Favicon}}">{{end}}
<style>
:root{--sf-primary:{{.Primary}};--sf-background:{{.Background}};--sf-text:{{.Text}};--sf-font:{{.Font}}}
body{margin:0;font-family:var(--sf-font),sans-serif;background:var(--sf-background);color:var(--sf-text)}
.sf-section{margin:0 auto{{if .MaxWidth}};max-width:{{.MaxWidth}}{{end}}}
.sf-button{display:inline-block;padding:10px 20px;background:var(--sf-primary);color:var(--sf-background);text-decoration:none}
.sf-placeholder{min-height:2rem}
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// Page assembles a complete published page: theme CSS derived from the
// site settings around the resolved section markup.
func Page(settings schema.SiteSettings, nodes []*core.Node) (string, error) {
	var body strings.Builder
	if err := WriteNodes(&body, nodes); err != nil {
		return "", err
	}

	title := settings.SEO.Title
	if title == "" {
		title = settings.Name
	}

	background := settings.Theme.Background
	if background == "" {
		if settings.Theme.Dark {
			background = "#15161a"
		} else {
			background = "#ffffff"
		}
	}

	var sb strings.Builder
	err := pageTmpl.Execute(&sb, struct {
		Title       string
		Description string
		Favicon     string
		Primary     string
		Background  string
		Text        string
		Font        string
		MaxWidth    string
		Dark        bool
		Body        template.HTML
	}{
		Title:       title,
		Description: settings.SEO.Description,
		Favicon:     schema.SanitizeURL(settings.Favicon),
		Primary:     schema.SanitizeColor(settings.Theme.Primary),
		Background:  schema.SanitizeColor(background),
		Text:        textColor(settings.Theme, background),
		Font:        fontName(settings.Theme.Font),
		MaxWidth:    settings.Layout.MaxWidth,
		Dark:        settings.Theme.Dark,
		Body:        template.HTML(body.String()),
	})
	if err != nil {
		return "", fmt.Errorf("assemble page: %w", err)
	}
	return sb.String(), nil
}

// textColor picks the theme text color, deriving a readable one from the
// background's lightness when the document does not set one.
func textColor(theme schema.Theme, background string) string {
	if schema.ValidColor(theme.Text) {
		return theme.Text
	}
	bg, err := colorful.Hex(background)
	if err != nil {
		return "#1a1a1a"
	}
	if l, _, _ := bg.Lab(); l < 0.5 {
		return "#f2f2f2"
	}
	return "#1a1a1a"
}

// fontName guards the CSS font-family slot against injection; anything
// that is not a plain font name falls back to the default.
func fontName(font string) string {
	if font == "" {
		return "Inter"
	}
	for _, r := range font {
		if !(r == ' ' || r == '-' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return "Inter"
		}
	}
	return font
}
