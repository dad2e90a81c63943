package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	AppFrame       lipgloss.Style
	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderValue    lipgloss.Style
	StatusBar      lipgloss.Style
	StatusBarKey   lipgloss.Style
	StatusBarValue lipgloss.Style
	Tabs           lipgloss.Style
	TabActive      lipgloss.Style
	TabInactive    lipgloss.Style
	Error          lipgloss.Style
	Success        lipgloss.Style

	Heading      lipgloss.Style
	HeadingPlain lipgloss.Style
	Label        lipgloss.Style
	Value        lipgloss.Style
	CopyHint     lipgloss.Style
	ImageHint    lipgloss.Style
	Preformatted lipgloss.Style

	RowSelected lipgloss.Style
	RowNumber   lipgloss.Style
	RowURL      lipgloss.Style
	RowDim      lipgloss.Style

	IndicatorError   lipgloss.Style
	IndicatorWarning lipgloss.Style
	IndicatorInfo    lipgloss.Style

	// TimingPhases maps timing label classes (see CSSClass) to styles.
	TimingPhases map[string]lipgloss.Style
}

func DefaultTheme() Theme {
	phase := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Bold(true)
	}
	return Theme{
		AppFrame: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#403B59")),
		Header:         lipgloss.NewStyle().Foreground(lipgloss.Color("#E5E1FF")).Padding(0, 1),
		HeaderTitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true),
		HeaderValue:    lipgloss.NewStyle().Foreground(lipgloss.Color("#D1CFF6")),
		StatusBar:      lipgloss.NewStyle().Foreground(lipgloss.Color("#A6A1BB")).Padding(0, 1),
		StatusBarKey:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8B39")).Bold(true),
		StatusBarValue: lipgloss.NewStyle().Foreground(lipgloss.Color("#EAEAEA")),
		Tabs:           lipgloss.NewStyle().Foreground(lipgloss.Color("#A6A1BB")).Padding(0, 1),
		TabActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FDFBFF")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5E5A72")).
			Padding(0, 1),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6E6E")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#6EF17E")),

		Heading: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6A1BB")).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#403B59")),
		HeadingPlain: lipgloss.NewStyle().Foreground(lipgloss.Color("#A6A1BB")).Bold(true),
		Label:        lipgloss.NewStyle().Foreground(lipgloss.Color("#A6A1BB")),
		Value:        lipgloss.NewStyle().Foreground(lipgloss.Color("#E8E9F0")),
		CopyHint:     lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Faint(true),
		ImageHint:    lipgloss.NewStyle().Foreground(lipgloss.Color("#56C2F4")),
		Preformatted: lipgloss.NewStyle().Foreground(lipgloss.Color("#D2D4F5")),

		RowSelected: lipgloss.NewStyle().Background(lipgloss.Color("#343B59")).Foreground(lipgloss.Color("#E8E9F0")),
		RowNumber:   lipgloss.NewStyle().Foreground(lipgloss.Color("#5E5A72")),
		RowURL:      lipgloss.NewStyle().Foreground(lipgloss.Color("#D1CFF6")),
		RowDim:      lipgloss.NewStyle().Foreground(lipgloss.Color("#A6A1BB")).Faint(true),

		IndicatorError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F25F5C")).Bold(true),
		IndicatorWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB61E")).Bold(true),
		IndicatorInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#56C2F4")),

		TimingPhases: map[string]lipgloss.Style{
			"total":     phase("#E8E9F0"),
			"blocked":   phase("#CDCDCD"),
			"dns":       phase("#23C7B4"),
			"connect":   phase("#FF9C00"),
			"ssl-tls":   phase("#C141CD"),
			"send":      phase("#2CB61E"),
			"wait":      phase("#45A8FF"),
			"receive":   phase("#0063B9"),
			"no-colour": lipgloss.NewStyle(),
		},
	}
}

// Phase returns the style for a timing label.
func (t Theme) Phase(label string) lipgloss.Style {
	if s, ok := t.TimingPhases[CSSClass(label)]; ok {
		return s
	}
	return t.Label
}

// CSSClass lowercases label and replaces every run of non-alphanumeric
// characters with a single dash, e.g. "SSL (TLS)" -> "ssl-tls". An empty
// result becomes "no-colour".
func CSSClass(label string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(label) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return "no-colour"
	}
	return b.String()
}
