package components

const contactTmpl = `<section class="sf-contact" id="contact">
<h2>{{.Heading}}</h2>
{{if .Body}}<p>{{.Body}}</p>{{end}}
{{if .Email}}<a class="sf-button" href="mailto:{{.Email}}">{{.ButtonText}}</a>{{end}}
</section>`

func contactView(props map[string]any) any {
	return struct {
		Heading    string
		Body       string
		Email      string
		ButtonText string
	}{
		Heading:    str(props, "heading", "Contact"),
		Body:       str(props, "body", ""),
		Email:      str(props, "email", ""),
		ButtonText: str(props, "button_text", "Say hello"),
	}
}
