package components

import "github.com/dshills/siteforge/internal/schema"

// Image sources run through the boundary URL sanitizer so a pasted
// javascript: link never reaches the markup.

const imageTmpl = `<figure class="sf-image">
{{if .Src}}<img src="{{.Src}}" alt="{{.Alt}}">{{else}}<span class="sf-image-empty">No image selected</span>{{end}}
{{if .Caption}}<figcaption>{{.Caption}}</figcaption>{{end}}
</figure>`

func imageView(props map[string]any) any {
	return struct {
		Src     string
		Alt     string
		Caption string
	}{
		Src:     schema.SanitizeURL(str(props, "src", "")),
		Alt:     str(props, "alt", ""),
		Caption: str(props, "caption", ""),
	}
}

const galleryTmpl = `<section class="sf-gallery">
{{if .Heading}}<h2>{{.Heading}}</h2>{{end}}
<div class="sf-gallery-grid">
{{range .Images}}<figure><img src="{{.Src}}" alt="{{.Alt}}"></figure>
{{end}}</div>
</section>`

type galleryImage struct {
	Src string
	Alt string
}

func galleryView(props map[string]any) any {
	var images []galleryImage
	for _, m := range objects(props, "images") {
		src := schema.SanitizeURL(str(m, "src", ""))
		if src == "" {
			continue
		}
		images = append(images, galleryImage{
			Src: src,
			Alt: str(m, "alt", ""),
		})
	}
	return struct {
		Heading string
		Images  []galleryImage
	}{
		Heading: str(props, "heading", ""),
		Images:  images,
	}
}
