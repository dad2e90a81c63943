package har

import "strings"

// RequestType is the coarse resource kind used for icons and tab
// applicability.
type RequestType string

const (
	TypeAudio      RequestType = "audio"
	TypeCSS        RequestType = "css"
	TypeFlash      RequestType = "flash"
	TypeFont       RequestType = "font"
	TypeHTML       RequestType = "html"
	TypeImage      RequestType = "image"
	TypeJavaScript RequestType = "javascript"
	TypeOther      RequestType = "other"
	TypeSVG        RequestType = "svg"
	TypeVideo      RequestType = "video"
)

// RequestTypeOf maps a MIME type to a RequestType.
func RequestTypeOf(mimeType string) RequestType {
	base := strings.ToLower(strings.TrimSpace(mimeType))
	if idx := strings.IndexByte(base, ';'); idx >= 0 {
		base = strings.TrimSpace(base[:idx])
	}
	if base == "" {
		return TypeOther
	}
	major, minor, _ := strings.Cut(base, "/")

	switch major {
	case "audio":
		return TypeAudio
	case "video":
		return TypeVideo
	case "font":
		return TypeFont
	case "image":
		if minor == "svg+xml" {
			return TypeSVG
		}
		return TypeImage
	}

	switch minor {
	case "svg+xml":
		return TypeSVG
	case "xml", "html", "xhtml+xml":
		return TypeHTML
	case "css":
		return TypeCSS
	case "vnd.ms-fontobject", "font-woff", "font-woff2", "x-font-truetype",
		"x-font-opentype", "x-font-woff", "font-sfnt":
		return TypeFont
	case "javascript", "x-javascript", "ecmascript", "script", "json":
		return TypeJavaScript
	case "x-shockwave-flash":
		return TypeFlash
	}
	return TypeOther
}

// Normalize folds unknown request types onto javascript, which is the
// fallback icon set used by the details header.
func (t RequestType) Normalize() RequestType {
	switch t {
	case TypeAudio, TypeCSS, TypeFlash, TypeFont, TypeHTML, TypeImage,
		TypeJavaScript, TypeOther, TypeSVG, TypeVideo:
		return t
	default:
		return TypeJavaScript
	}
}
