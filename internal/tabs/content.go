package tabs

import "github.com/unkn0wn-root/harview/internal/details"

// Block is one piece of rendered tab content. Surfaces in internal/view
// decide how each block looks.
type Block interface {
	block()
}

// Content is the rendered body of a tab.
type Content []Block

type Heading struct {
	Text string
	// Plain drops the heading underline, used for indicator sections.
	Plain bool
}

type DefinitionList struct {
	Items []details.SafeKV
	// Classed asks the surface to style each label by its CSS class
	// (timing phases).
	Classed bool
}

type Preformatted struct {
	Text string
	// Syntax is a lexer hint such as "json" or "html"; empty for none.
	Syntax string
}

// CopyAction marks content the host may put on the clipboard.
type CopyAction struct {
	Label string
	Text  string
}

type Image struct {
	Src       string
	MaxHeight int
}

func (Heading) block()        {}
func (DefinitionList) block() {}
func (Preformatted) block()   {}
func (CopyAction) block()     {}
func (Image) block()          {}

// CopyText returns the first copy action payload in c.
func (c Content) CopyText() (string, bool) {
	for _, b := range c {
		if a, ok := b.(CopyAction); ok {
			return a.Text, true
		}
	}
	return "", false
}
