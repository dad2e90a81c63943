package tabs

import "github.com/unkn0wn-root/harview/internal/errdef"

// RenderFunc produces tab content. panelHeight is the space the host has
// for the details panel when the tab first becomes visible.
type RenderFunc func(panelHeight int) Content

// Tab is one titled section of the details overlay. Content is produced
// lazily on the first Render and kept for the lifetime of the Tab; the HAR
// entry it describes is immutable, so the cache never goes stale.
type Tab struct {
	Title string
	Class string

	render   RenderFunc
	content  Content
	rendered bool
}

// New returns a lazily rendered tab.
func New(title, class string, render RenderFunc) *Tab {
	return &Tab{Title: title, Class: class, render: render}
}

// Static returns a tab whose content is already known.
func Static(title, class string, content Content) *Tab {
	return &Tab{Title: title, Class: class, content: content, rendered: true}
}

// Render returns the tab content, invoking the render function only on the
// first call. Later calls ignore panelHeight and return the cached value.
func (t *Tab) Render(panelHeight int) (Content, error) {
	if t.rendered {
		return t.content, nil
	}
	if t.render == nil {
		return nil, errdef.New(errdef.CodeInvariant, "tab %q has no content and no renderer", t.Title)
	}
	t.content = t.render(panelHeight)
	t.rendered = true
	t.render = nil
	return t.content, nil
}

// Rendered reports whether the content has been produced.
func (t *Tab) Rendered() bool {
	return t.rendered
}
