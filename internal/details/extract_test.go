package details

import (
	"math"
	"strings"
	"testing"

	"github.com/unkn0wn-root/harview/internal/har"
)

func f(v float64) *float64 { return &v }

func fixtureEntry() *har.Entry {
	return &har.Entry{
		StartedDateTime: "2024-03-04T10:00:01.500Z",
		Time:            f(250),
		ServerIPAddress: "93.184.216.34",
		Connection:      "4711",
		InitialPriority: "High",
		WasPushed:       0.0,
		BytesIn:         "2048",
		BytesOut:        512.0,
		GzipSave:        "n/a",
		ContentType:     "text/html; charset=x",
		Request: har.Request{
			Method:      "GET",
			URL:         "https://example.com/index.html",
			HTTPVersion: "HTTP/1.1",
			HeadersSize: 320,
			BodySize:    0,
			Headers: har.Headers{
				{Name: "Host", Value: "example.com"},
				{Name: "User-Agent", Value: "harview-test"},
				{Name: "accept", Value: "text/html"},
				{Name: "Accept", Value: "*/*"},
				{Name: "X-Empty", Value: ""},
			},
			QueryString: []har.NameValue{{Name: "q", Value: "1"}},
		},
		Response: har.Response{
			Status:      200,
			StatusText:  "OK",
			HTTPVersion: "HTTP/1.1",
			HeadersSize: -1,
			BodySize:    1024,
			Headers: har.Headers{
				{Name: "Content-Type", Value: "text/html"},
				{Name: "Content-Length", Value: "1024"},
				{Name: "Set-Cookie", Value: "a=1"},
				{Name: "Set-Cookie", Value: "b=2"},
				{Name: "Last-Modified", Value: "Mon, 04 Mar 2024 09:00:00 GMT"},
				{Name: "Expires", Value: "never"},
				{Name: "Age", Value: "-5"},
				{Name: "Vary", Value: "Accept"},
				{Name: "Vary", Value: "Origin"},
			},
			Content: har.Content{Size: f(1024), MimeType: "text/html", Text: "<p>hi</p>"},
		},
		Timings: har.Timings{
			Blocked: f(-1),
			DNS:     f(5),
			Connect: f(100),
			SSL:     f(40),
			Send:    f(0),
			Wait:    f(80),
			Receive: f(1500),
		},
	}
}

func values(kvs []SafeKV) map[string][]string {
	out := make(map[string][]string)
	for _, kv := range kvs {
		out[kv.Label] = append(out[kv.Label], kv.Value)
	}
	return out
}

func labels(kvs []SafeKV) []string {
	out := make([]string, 0, len(kvs))
	for _, kv := range kvs {
		out = append(out, kv.Label)
	}
	return out
}

func assertSafe(t *testing.T, name string, kvs []SafeKV) {
	t.Helper()
	for _, kv := range kvs {
		if kv.Value == "" {
			t.Fatalf("%s: row %q has no value", name, kv.Label)
		}
		if strings.Contains(kv.Value, "NaN") {
			t.Fatalf("%s: row %q rendered NaN", name, kv.Label)
		}
	}
}

func TestExtractorsOnlyReturnSafeRows(t *testing.T) {
	entries := []*har.Entry{fixtureEntry(), {}}
	for _, entry := range entries {
		assertSafe(t, "general", General(entry, 10, 1, nil))
		assertSafe(t, "request", Request(entry))
		assertSafe(t, "response", Response(entry))
		assertSafe(t, "timings", Timings(entry, 0, 100))
		assertSafe(t, "request headers", RequestHeaders(entry))
		assertSafe(t, "response headers", ResponseHeaders(entry))
	}
}

func TestGeneral(t *testing.T) {
	got := General(fixtureEntry(), 1500, 3, nil)
	want := []string{
		"Request Number",
		"Started",
		"Duration",
		"Error/Status Code",
		"Server IPAddress",
		"Connection",
		"Browser Priority",
		"Host",
		"Bytes In (downloaded)",
		"Bytes Out (uploaded)",
	}
	if strings.Join(labels(got), ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected labels %v", labels(got))
	}
	v := values(got)
	if v["Request Number"][0] != "#3" {
		t.Fatalf("request number = %v", v["Request Number"])
	}
	if v["Started"][0] != "Monday, 3/4/2024, 10:00:01.500 AM (1.5 sec after page request started)" {
		t.Fatalf("started = %q", v["Started"][0])
	}
	if v["Duration"][0] != "250 ms" || v["Error/Status Code"][0] != "200 OK" {
		t.Fatalf("unexpected duration/status %v", v)
	}
	if v["Browser Priority"][0] != "High" {
		t.Fatalf("priority should fall back to initial priority")
	}
	if v["Bytes In (downloaded)"][0] != "2.0 KB" || v["Bytes Out (uploaded)"][0] != "512 B" {
		t.Fatalf("unexpected byte rows %v", v)
	}
}

func TestGeneralStartedWithoutOffset(t *testing.T) {
	v := values(General(fixtureEntry(), 0, 1, nil))
	if strings.Contains(v["Started"][0], "after page request") {
		t.Fatalf("no suffix expected for zero offset: %q", v["Started"][0])
	}
}

func TestGeneralWasPushed(t *testing.T) {
	entry := fixtureEntry()
	entry.WasPushed = 1.0
	entry.Priority = "Low"
	v := values(General(entry, 0, 1, nil))
	if v["Was pushed"][0] != "yes" {
		t.Fatalf("expected pushed row, got %v", v["Was pushed"])
	}
	if v["Browser Priority"][0] != "Low" {
		t.Fatalf("explicit priority should win")
	}
}

func TestReduceDefaultsToIdentity(t *testing.T) {
	rows := []KV{{Label: "A", Value: "1"}, {Label: "B", Value: ""}}
	for name, r := range map[string]Reducer{"nil": nil, "identity": Identity} {
		got := Reduce(rows, r)
		if len(got) != 2 || got[0] != rows[0] || got[1] != rows[1] {
			t.Fatalf("%s: expected rows unchanged, got %+v", name, got)
		}
	}
	if got := Reduce(nil, nil); len(got) != 0 {
		t.Fatalf("empty input should reduce to nothing, got %+v", got)
	}
}

func TestGeneralReducer(t *testing.T) {
	drop := func(acc []KV, kv KV, _ int, _ []KV) []KV {
		if kv.Label == "Connection" {
			return acc
		}
		acc = append(acc, kv)
		if kv.Label == "Request Number" {
			acc = append(acc, KV{Label: "Tag", Value: "cdn"})
		}
		return acc
	}
	got := labels(General(fixtureEntry(), 0, 1, drop))
	if got[1] != "Tag" {
		t.Fatalf("reducer row should follow request number: %v", got)
	}
	for _, label := range got {
		if label == "Connection" {
			t.Fatalf("reducer should have removed Connection")
		}
	}
}

func TestRequest(t *testing.T) {
	got := Request(fixtureEntry())
	v := values(got)
	if v["Method"][0] != "GET" || v["HTTP Version"][0] != "HTTP/1.1" {
		t.Fatalf("unexpected request line %v", v)
	}
	if v["Headers Size"][0] != "320 B" {
		t.Fatalf("headers size = %v", v["Headers Size"])
	}
	if _, ok := v["Body Size"]; ok {
		t.Fatalf("zero body size should be omitted")
	}
	if accept := v["Accept"]; len(accept) != 2 || accept[0] != "text/html" || accept[1] != "*/*" {
		t.Fatalf("accept rows = %v", accept)
	}
	if v["Querystring parameters count"][0] != "1" {
		t.Fatalf("query count = %v", v["Querystring parameters count"])
	}
	if _, ok := v["Cookies count"]; ok {
		t.Fatalf("zero cookies should be omitted")
	}
}

func TestResponse(t *testing.T) {
	v := values(Response(fixtureEntry()))
	if v["Status"][0] != "200 OK" {
		t.Fatalf("status = %v", v["Status"])
	}
	if v["Content-Type"][0] != "text/html | text/html; charset=x" {
		t.Fatalf("content type = %q", v["Content-Type"][0])
	}
	if v["Last-Modified"][0] != "Monday, 3/4/2024, 9:00:00.000 AM" {
		t.Fatalf("last modified = %v", v["Last-Modified"])
	}
	if _, ok := v["Expires"]; ok {
		t.Fatalf("unparseable Expires should be omitted")
	}
	if _, ok := v["Age"]; ok {
		t.Fatalf("negative Age should be omitted")
	}
	if v["Content-Length"][0] != "1.0 KB" {
		t.Fatalf("content length = %v", v["Content-Length"])
	}
	if _, ok := v["Content Size"]; ok {
		t.Fatalf("content size equal to content length should be hidden")
	}
	if vary := v["Vary"]; len(vary) != 2 {
		t.Fatalf("expected both Vary headers, got %v", vary)
	}
}

func TestResponseContentTypeEqual(t *testing.T) {
	entry := fixtureEntry()
	entry.ContentType = "text/html"
	if got := values(Response(entry))["Content-Type"][0]; got != "text/html" {
		t.Fatalf("content type = %q", got)
	}
}

func TestResponseContentTypeFromCollectorOnly(t *testing.T) {
	entry := fixtureEntry()
	entry.Response.Headers = entry.Response.Headers[1:]
	entry.ContentType = "image/webp"
	got := values(Response(entry))["Content-Type"]
	if len(got) != 1 || got[0] != "image/webp" {
		t.Fatalf("expected collector content type alone, got %v", got)
	}
}

func TestResponseContentTypeAbsent(t *testing.T) {
	entry := fixtureEntry()
	entry.Response.Headers = entry.Response.Headers[1:]
	entry.ContentType = nil
	if _, ok := values(Response(entry))["Content-Type"]; ok {
		t.Fatalf("content type row should be omitted when neither source has one")
	}
}

func TestResponseContentSizeDiffers(t *testing.T) {
	entry := fixtureEntry()
	entry.Response.Content.Size = f(4096)
	v := values(Response(entry))
	if v["Content Size"][0] != "4.0 KB" {
		t.Fatalf("content size = %v", v["Content Size"])
	}

	entry.Response.Content.Size = f(-1)
	if _, ok := values(Response(entry))["Content Size"]; ok {
		t.Fatalf("-1 content size should be hidden")
	}
}

func TestTimings(t *testing.T) {
	v := values(Timings(fixtureEntry(), 100, 350))
	if v["Total"][0] != "250 ms" {
		t.Fatalf("total = %v", v["Total"])
	}
	if _, ok := v["Blocked"]; ok {
		t.Fatalf("-1 blocked should be omitted")
	}
	if v["Connect"][0] != "100 ms (without TLS: 60 ms)" {
		t.Fatalf("connect = %q", v["Connect"][0])
	}
	if v["Send"][0] != "0 ms" || v["Receive"][0] != "1.5 sec" {
		t.Fatalf("unexpected send/receive %v", v)
	}
}

func TestTimingsWithoutSSL(t *testing.T) {
	entry := fixtureEntry()
	entry.Timings.SSL = f(-1)
	v := values(Timings(entry, math.NaN(), 10))
	if v["Connect"][0] != "100 ms" {
		t.Fatalf("connect = %q", v["Connect"][0])
	}
	if _, ok := v["Total"]; ok {
		t.Fatalf("total needs both offsets")
	}
}

func TestHeaderExports(t *testing.T) {
	entry := fixtureEntry()
	req := RequestHeaders(entry)
	if len(req) != 4 {
		t.Fatalf("empty header values should be filtered, got %v", req)
	}
	resp := ResponseHeaders(entry)
	if resp[0].Label != "Content-Type" || len(resp) != len(entry.Response.Headers) {
		t.Fatalf("response headers should come from the response: %v", resp)
	}
	cookies := values(resp)["Set-Cookie"]
	if len(cookies) != 2 || cookies[1] != "b=2" {
		t.Fatalf("repeated headers lost: %v", cookies)
	}
}
