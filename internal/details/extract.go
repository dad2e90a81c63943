package details

import (
	"math"
	"strconv"
	"strings"

	"github.com/unkn0wn-root/harview/internal/fieldfmt"
	"github.com/unkn0wn-root/harview/internal/har"
)

const contentTypeSeparator = " | "

var requestHeaderAllowList = []string{
	"User-Agent",
	"Host",
	"Connection",
	"Accept",
	"Accept-Encoding",
	"Expect",
	"Forwarded",
	"If-Modified-Since",
	"If-Range",
	"If-Unmodified-Since",
}

// General returns the overview rows of an entry. startRelative is the
// entry start in ms relative to the page start; reduce runs over the raw
// rows before filtering and may be nil.
func General(entry *har.Entry, startRelative float64, requestID int, reduce Reducer) []SafeKV {
	rows := []KV{
		{Label: "Request Number", Value: "#" + strconv.Itoa(requestID)},
		{Label: "Started", Value: startedText(entry.StartedDateTime, startRelative)},
		parsed("Duration", entry.Time, fieldfmt.Number, fieldfmt.FormatMilliseconds),
		{Label: "Error/Status Code", Value: statusLine(entry.Response)},
		pair("Server IPAddress", entry.ServerIPAddress),
		pair("Connection", entry.Connection),
		pair("Browser Priority", firstPresent(entry.Priority, entry.InitialPriority)),
		parsed("Was pushed", entry.WasPushed, fieldfmt.ParsePositive, func(float64) string { return "yes" }),
		pair("Initiator (Loaded by)", entry.Initiator),
		pair("Initiator Line", entry.InitiatorLine),
		pair("Initiator Type", entry.InitiatorType),
		headerValue(entry.Request.Headers, "Host"),
		pair("IP", entry.IPAddr),
		count("Client Port", entry.ClientPort),
		pair("Expires", entry.Expires),
		parsed("Cache Time", entry.CacheTime, fieldfmt.ParsePositive, fieldfmt.FormatSeconds),
		pair("CDN Provider", entry.CDNProvider),
		byteSize("ObjectSize", entry.ObjectSize),
		byteSize("Bytes In (downloaded)", entry.BytesIn),
		byteSize("Bytes Out (uploaded)", entry.BytesOut),
		byteSize("JPEG Scan Count", entry.JPEGScanCount),
		byteSize("Gzip Total", entry.GzipTotal),
		byteSize("Gzip Save", entry.GzipSave),
		byteSize("Minify Total", entry.MinifyTotal),
		byteSize("Minify Save", entry.MinifySave),
		byteSize("Image Total", entry.ImageTotal),
		byteSize("Image Save", entry.ImageSave),
	}
	return Safe(Reduce(rows, reduce))
}

// Request returns the request side rows, including the allow-listed
// headers with every repeated occurrence.
func Request(entry *har.Entry) []SafeKV {
	req := entry.Request
	rows := []KV{
		pair("Method", req.Method),
		pair("HTTP Version", req.HTTPVersion),
		byteSize("Bytes Out (uploaded)", entry.BytesOut),
		byteSize("Headers Size", req.HeadersSize),
		byteSize("Body Size", req.BodySize),
		parsed("Comment", req.Comment, fieldfmt.ParseNonEmpty, nil),
	}
	for _, name := range requestHeaderAllowList {
		rows = append(rows, headerRow(req.Headers, name)...)
	}
	rows = append(rows,
		count("Querystring parameters count", len(req.QueryString)),
		count("Cookies count", len(req.Cookies)),
	)
	return Safe(rows)
}

// Response returns the response side rows.
func Response(entry *har.Entry) []SafeKV {
	resp := entry.Response
	headers := resp.Headers
	content := resp.Content

	contentLength, _ := headers.Get("Content-Length")

	var rows []KV
	add := func(kvs ...KV) { rows = append(rows, kvs...) }

	add(
		KV{Label: "Status", Value: statusLine(resp)},
		pair("HTTP Version", resp.HTTPVersion),
		byteSize("Bytes In (downloaded)", entry.BytesIn),
		byteSize("Headers Size", resp.HeadersSize),
		byteSize("Body Size", resp.BodySize),
		KV{Label: "Content-Type", Value: contentType(entry)},
	)
	add(headerRow(headers, "Cache-Control")...)
	add(headerRow(headers, "Content-Encoding")...)
	add(
		dateHeader(headers, "Expires"),
		dateHeader(headers, "Last-Modified"),
	)
	add(headerRow(headers, "Pragma")...)
	add(
		byteSize("Content-Length", contentLength),
		byteSize("Content Size", contentSize(content.Size, contentLength)),
		byteSize("Content Compression", content.Compression),
	)
	add(headerRow(headers, "Connection")...)
	add(headerRow(headers, "ETag")...)
	add(headerRow(headers, "Accept-Patch")...)
	add(ageHeader(headers))
	add(headerRow(headers, "Allow")...)
	add(headerRow(headers, "Content-Disposition")...)
	add(headerRow(headers, "Location")...)
	add(headerRow(headers, "Strict-Transport-Security")...)
	add(headerRows(headers, "Trailer (for chunked transfer coding)", "Trailer")...)
	add(headerRow(headers, "Transfer-Encoding")...)
	add(headerRow(headers, "Upgrade")...)
	add(headerRow(headers, "Vary")...)
	add(headerRow(headers, "Timing-Allow-Origin")...)
	add(
		parsed("Redirect URL", resp.RedirectURL, fieldfmt.ParseNonEmpty, nil),
		parsed("Comment", resp.Comment, fieldfmt.ParseNonEmpty, nil),
	)
	return Safe(rows)
}

// Timings returns the phase breakdown. start and end are the relative
// offsets of the entry; NaN marks either as unknown.
func Timings(entry *har.Entry, start, end float64) []SafeKV {
	t := entry.Timings

	total := ""
	if !math.IsNaN(start) && !math.IsNaN(end) {
		total = fieldfmt.FormatMilliseconds(end - start)
	}

	return Safe([]KV{
		{Label: "Total", Value: total},
		{Label: "Blocked", Value: optionalTiming(t.Blocked)},
		{Label: "DNS", Value: optionalTiming(t.DNS)},
		{Label: "Connect", Value: connectTiming(t)},
		{Label: "SSL (TLS)", Value: optionalTiming(t.SSL)},
		{Label: "Send", Value: optionalTiming(t.Send)},
		{Label: "Wait", Value: optionalTiming(t.Wait)},
		{Label: "Receive", Value: optionalTiming(t.Receive)},
	})
}

// RequestHeaders exports every request header verbatim.
func RequestHeaders(entry *har.Entry) []SafeKV {
	return headerKVs(entry.Request.Headers)
}

// ResponseHeaders exports every response header verbatim.
func ResponseHeaders(entry *har.Entry) []SafeKV {
	return headerKVs(entry.Response.Headers)
}

func startedText(started string, startRelative float64) string {
	ts, ok := fieldfmt.ParseDate(started)
	if !ok {
		return ""
	}
	out := fieldfmt.FormatDateLocalized(ts)
	if startRelative > 0 {
		out += " (" + fieldfmt.FormatMilliseconds(startRelative) + " after page request started)"
	}
	return out
}

func statusLine(resp har.Response) string {
	return strings.TrimSpace(strconv.Itoa(resp.Status) + " " + resp.StatusText)
}

func firstPresent(values ...any) any {
	for _, v := range values {
		if fieldfmt.Text(v) != "" {
			return v
		}
	}
	return nil
}

func headerValue(headers har.Headers, name string) KV {
	v, _ := headers.Get(name)
	return KV{Label: name, Value: v}
}

func dateHeader(headers har.Headers, name string) KV {
	v, ok := headers.Get(name)
	if !ok {
		return KV{Label: name}
	}
	return parsed(name, v, fieldfmt.ParseDate, fieldfmt.FormatDateLocalized)
}

func ageHeader(headers har.Headers) KV {
	v, ok := headers.Get("Age")
	if !ok {
		return KV{Label: "Age"}
	}
	return parsed("Age", v, fieldfmt.ParseNonNegative, fieldfmt.FormatSeconds)
}

// contentType merges the transport content type with the one reported by
// the collector when they differ.
func contentType(entry *har.Entry) string {
	header, _ := entry.Response.Headers.Get("Content-Type")
	collected := fieldfmt.Text(entry.ContentType)
	switch {
	case collected == "" || collected == header:
		return header
	case header == "":
		return collected
	default:
		return header + contentTypeSeparator + collected
	}
}

// contentSize hides content.size when it only repeats Content-Length. The
// comparison is numeric so "512" and 512.0 count as the same value.
func contentSize(size *float64, contentLength string) any {
	if size == nil || *size == 0 || *size == -1 {
		return nil
	}
	if length, ok := fieldfmt.Number(contentLength); ok && length == *size {
		return nil
	}
	return *size
}

func optionalTiming(v *float64) string {
	out, _ := fieldfmt.ParseAndFormat(v, fieldfmt.ParseNonNegative, fieldfmt.FormatMilliseconds)
	return out
}

// connectTiming reports connect including TLS, as HAR 1.1 requires, and
// adds the figure without TLS when an ssl phase was recorded.
func connectTiming(t har.Timings) string {
	out := optionalTiming(t.Connect)
	if out == "" || t.SSL == nil || *t.SSL <= 0 || *t.Connect == 0 {
		return out
	}
	without := *t.Connect - *t.SSL
	if w := optionalTiming(&without); w != "" {
		out += " (without TLS: " + w + ")"
	}
	return out
}
