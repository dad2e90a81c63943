package har

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Header is a single HAR header. Some collectors emit structured values, so
// Value is left untyped and normalised through Text.
type Header struct {
	Name    string `json:"name"`
	Value   any    `json:"value"`
	Comment string `json:"comment,omitempty"`
}

// Text returns the header value as display text. Structured values are
// encoded as JSON; encoding/json sorts map keys so the output is stable.
func (h Header) Text() string {
	switch v := h.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64, bool, int, int64:
		return fmt.Sprint(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	}
}

// Headers keeps the capture order and allows repeated names.
type Headers []Header

// Get returns the first header matching name case-insensitively.
func (hs Headers) Get(name string) (string, bool) {
	for _, h := range hs {
		if strings.EqualFold(h.Name, name) {
			return h.Text(), true
		}
	}
	return "", false
}

// Values returns every header matching name, in capture order.
func (hs Headers) Values(name string) []string {
	var out []string
	for _, h := range hs {
		if strings.EqualFold(h.Name, name) {
			out = append(out, h.Text())
		}
	}
	return out
}
