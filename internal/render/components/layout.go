package components

import (
	"fmt"
	"strconv"

	"github.com/dshills/siteforge/internal/render/core"
	"github.com/dshills/siteforge/internal/schema"
)

// layoutRenderer is the one container type: its props carry a nested
// sequence of sections under "items", each resolved through the same
// registry via the RenderContext callback. The recursion is mutual (the
// resolver calls layout, layout calls back into the resolver) so nested
// containers need no special casing anywhere.
type layoutRenderer struct{}

// Type returns the section type this renderer serves.
func (l *layoutRenderer) Type() string { return "layout" }

// Render resolves the nested items and returns a container node.
func (l *layoutRenderer) Render(rc core.RenderContext, props map[string]any, styles core.Styles) (*core.Node, error) {
	node := &core.Node{
		Kind:   core.NodeElement,
		Type:   "layout",
		Styles: styles,
		Attrs:  map[string]string{},
	}

	columns := num(props, "columns", 1)
	if columns < 1 {
		columns = 1
	}
	node.Attrs["columns"] = strconv.Itoa(columns)
	if gap := str(props, "gap", ""); gap != "" {
		node.Attrs["gap"] = gap
	}

	if rc.Resolve == nil {
		return nil, fmt.Errorf("render layout: nesting not supported by this resolver")
	}

	items := schema.SectionsFromAny(list(props, "items"))
	node.Children = rc.Resolve(items)
	return node, nil
}
