package components

// The default prop values below double as the Default/Template Provider's
// source of truth; see internal/defaults.

const heroTmpl = `<section class="sf-hero">
<h1>{{.Heading}}</h1>
{{if .Subheading}}<p class="sf-hero-sub">{{.Subheading}}</p>{{end}}
{{if .ButtonText}}<a class="sf-button" href="{{.ButtonLink}}">{{.ButtonText}}</a>{{end}}
</section>`

func heroView(props map[string]any) any {
	return struct {
		Heading    string
		Subheading string
		ButtonText string
		ButtonLink string
	}{
		Heading:    str(props, "heading", "Welcome to my site"),
		Subheading: str(props, "subheading", ""),
		ButtonText: str(props, "button_text", ""),
		ButtonLink: str(props, "button_link", "#"),
	}
}

const ctaTmpl = `<section class="sf-cta">
<h2>{{.Title}}</h2>
{{if .Body}}<p>{{.Body}}</p>{{end}}
<a class="sf-button" href="{{.ButtonLink}}">{{.ButtonText}}</a>
</section>`

func ctaView(props map[string]any) any {
	return struct {
		Title      string
		Body       string
		ButtonText string
		ButtonLink string
	}{
		Title:      str(props, "title", "Ready to get started?"),
		Body:       str(props, "body", ""),
		ButtonText: str(props, "button_text", "Get in touch"),
		ButtonLink: str(props, "button_link", "#contact"),
	}
}

const textTmpl = `<section class="sf-text">
{{if .Heading}}<h2>{{.Heading}}</h2>{{end}}
<p>{{.Body}}</p>
</section>`

func textView(props map[string]any) any {
	return struct {
		Heading string
		Body    string
	}{
		Heading: str(props, "heading", ""),
		Body:    str(props, "body", ""),
	}
}

const featuresTmpl = `<section class="sf-features">
{{if .Heading}}<h2>{{.Heading}}</h2>{{end}}
<ul>
{{range .Items}}<li><h3>{{.Title}}</h3>{{if .Body}}<p>{{.Body}}</p>{{end}}</li>
{{end}}</ul>
</section>`

type featureItem struct {
	Title string
	Body  string
}

func featuresView(props map[string]any) any {
	var items []featureItem
	for _, m := range objects(props, "items") {
		items = append(items, featureItem{
			Title: str(m, "title", "Feature"),
			Body:  str(m, "body", ""),
		})
	}
	return struct {
		Heading string
		Items   []featureItem
	}{
		Heading: str(props, "heading", "Features"),
		Items:   items,
	}
}
