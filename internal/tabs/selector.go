package tabs

import (
	"fmt"
	"strings"

	"github.com/unkn0wn-root/harview/internal/details"
	"github.com/unkn0wn-root/harview/internal/errdef"
)

// Selector picks a builder from the registry and optionally customises it.
// A selector with only Use set behaves like a bare registry key.
type Selector struct {
	Use   string
	Label string
	// IsNetwork set to false hides the field list of the request and
	// response tabs while keeping the header lists.
	IsNetwork *bool
	// ReduceTuples post-processes the general tab rows. Other builders
	// ignore it.
	ReduceTuples details.Reducer
}

// Use returns a selector for a bare registry key.
func Use(key string) Selector {
	return Selector{Use: key}
}

func (s Selector) network() bool {
	return s.IsNetwork == nil || *s.IsNetwork
}

// ParseSelectors converts a decoded config list into selectors. Items may
// be strings or tables with use, label and is_network keys.
func ParseSelectors(items []any) ([]Selector, error) {
	out := make([]Selector, 0, len(items))
	for idx, item := range items {
		switch v := item.(type) {
		case string:
			key := strings.TrimSpace(v)
			if key == "" {
				return nil, errdef.New(errdef.CodeConfig, "tab %d: empty key", idx+1)
			}
			out = append(out, Use(key))
		case map[string]any:
			sel, err := selectorFromMap(v)
			if err != nil {
				return nil, errdef.Wrap(errdef.CodeConfig, err, "tab %d", idx+1)
			}
			out = append(out, sel)
		default:
			return nil, errdef.New(errdef.CodeConfig, "tab %d: unsupported value %T", idx+1, item)
		}
	}
	return out, nil
}

func selectorFromMap(m map[string]any) (Selector, error) {
	var sel Selector
	for rawKey, val := range m {
		key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(rawKey), "_", ""))
		switch key {
		case "use":
			s, ok := val.(string)
			if !ok {
				return sel, fmt.Errorf("use must be a string, got %T", val)
			}
			sel.Use = strings.TrimSpace(s)
		case "label":
			s, ok := val.(string)
			if !ok {
				return sel, fmt.Errorf("label must be a string, got %T", val)
			}
			sel.Label = s
		case "isnetwork":
			b, ok := val.(bool)
			if !ok {
				return sel, fmt.Errorf("is_network must be a bool, got %T", val)
			}
			sel.IsNetwork = &b
		default:
			return sel, fmt.Errorf("unknown key %q", rawKey)
		}
	}
	if sel.Use == "" {
		return sel, fmt.Errorf("missing use")
	}
	return sel, nil
}
