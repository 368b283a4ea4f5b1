package components

const navbarTmpl = `<nav class="sf-navbar">
<span class="sf-brand">{{.Brand}}</span>
<ul>
{{range .Links}}<li><a href="{{.Href}}">{{.Label}}</a></li>
{{end}}</ul>
</nav>`

type navLink struct {
	Label string
	Href  string
}

func navbarView(props map[string]any) any {
	var links []navLink
	for _, m := range objects(props, "links") {
		links = append(links, navLink{
			Label: str(m, "label", "Link"),
			Href:  str(m, "href", "#"),
		})
	}
	return struct {
		Brand string
		Links []navLink
	}{
		Brand: str(props, "brand", "My Site"),
		Links: links,
	}
}

const footerTmpl = `<footer class="sf-footer">
<p>{{.Text}}</p>
{{if .Links}}<ul>
{{range .Links}}<li><a href="{{.Href}}">{{.Label}}</a></li>
{{end}}</ul>{{end}}
</footer>`

func footerView(props map[string]any) any {
	var links []navLink
	for _, m := range objects(props, "links") {
		links = append(links, navLink{
			Label: str(m, "label", "Link"),
			Href:  str(m, "href", "#"),
		})
	}
	return struct {
		Text  string
		Links []navLink
	}{
		Text:  str(props, "text", ""),
		Links: links,
	}
}
