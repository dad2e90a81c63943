package har

import (
	"encoding/json"
)

// Document is the top level of a HAR file.
type Document struct {
	Log Log `json:"log"`
}

type Log struct {
	Version string  `json:"version"`
	Creator Creator `json:"creator"`
	Pages   []Page  `json:"pages,omitempty"`
	Entries []Entry `json:"entries"`
	Comment string  `json:"comment,omitempty"`
}

type Creator struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type Page struct {
	ID              string `json:"id"`
	StartedDateTime string `json:"startedDateTime"`
	Title           string `json:"title"`
}

// Entry is one HTTP transaction. Fields prefixed with an underscore in the
// JSON form are collector extensions (WebPageTest, Chrome) and may hold
// either strings or numbers, so they stay untyped.
type Entry struct {
	PageRef         string   `json:"pageref,omitempty"`
	StartedDateTime string   `json:"startedDateTime"`
	Time            *float64 `json:"time,omitempty"`
	Request         Request  `json:"request"`
	Response        Response `json:"response"`
	Cache           *Cache   `json:"cache,omitempty"`
	Timings         Timings  `json:"timings"`
	ServerIPAddress string   `json:"serverIPAddress,omitempty"`
	Connection      string   `json:"connection,omitempty"`
	Comment         string   `json:"comment,omitempty"`

	Priority        any `json:"_priority,omitempty"`
	InitialPriority any `json:"_initialPriority,omitempty"`
	WasPushed       any `json:"_was_pushed,omitempty"`
	Initiator       any `json:"_initiator,omitempty"`
	InitiatorLine   any `json:"_initiator_line,omitempty"`
	InitiatorType   any `json:"_initiator_type,omitempty"`
	IPAddr          any `json:"_ip_addr,omitempty"`
	ClientPort      any `json:"_client_port,omitempty"`
	Expires         any `json:"_expires,omitempty"`
	CacheTime       any `json:"_cache_time,omitempty"`
	CDNProvider     any `json:"_cdn_provider,omitempty"`
	ContentType     any `json:"_contentType,omitempty"`
	ObjectSize      any `json:"_objectSize,omitempty"`
	BytesIn         any `json:"_bytesIn,omitempty"`
	BytesOut        any `json:"_bytesOut,omitempty"`
	JPEGScanCount   any `json:"_jpeg_scan_count,omitempty"`
	GzipTotal       any `json:"_gzip_total,omitempty"`
	GzipSave        any `json:"_gzip_save,omitempty"`
	MinifyTotal     any `json:"_minify_total,omitempty"`
	MinifySave      any `json:"_minify_save,omitempty"`
	ImageTotal      any `json:"_image_total,omitempty"`
	ImageSave       any `json:"_image_save,omitempty"`

	raw json.RawMessage
}

type Request struct {
	Method      string      `json:"method"`
	URL         string      `json:"url"`
	HTTPVersion string      `json:"httpVersion"`
	Cookies     []Cookie    `json:"cookies"`
	Headers     Headers     `json:"headers"`
	QueryString []NameValue `json:"queryString"`
	PostData    *PostData   `json:"postData,omitempty"`
	HeadersSize int         `json:"headersSize"`
	BodySize    int         `json:"bodySize"`
	Comment     string      `json:"comment,omitempty"`
}

type Response struct {
	Status      int      `json:"status"`
	StatusText  string   `json:"statusText"`
	HTTPVersion string   `json:"httpVersion"`
	Cookies     []Cookie `json:"cookies"`
	Headers     Headers  `json:"headers"`
	Content     Content  `json:"content"`
	RedirectURL string   `json:"redirectURL"`
	HeadersSize int      `json:"headersSize"`
	BodySize    int      `json:"bodySize"`
	Comment     string   `json:"comment,omitempty"`
}

type Content struct {
	Size        *float64 `json:"size,omitempty"`
	Compression *float64 `json:"compression,omitempty"`
	MimeType    string   `json:"mimeType"`
	Text        string   `json:"text,omitempty"`
	Encoding    string   `json:"encoding,omitempty"`
	Comment     string   `json:"comment,omitempty"`
}

type Cookie struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Path     string `json:"path,omitempty"`
	Domain   string `json:"domain,omitempty"`
	Expires  string `json:"expires,omitempty"`
	HTTPOnly bool   `json:"httpOnly,omitempty"`
	Secure   bool   `json:"secure,omitempty"`
}

type NameValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type PostData struct {
	MimeType string      `json:"mimeType"`
	Params   []NameValue `json:"params,omitempty"`
	Text     string      `json:"text"`
}

type Cache struct {
	BeforeRequest *CacheState `json:"beforeRequest,omitempty"`
	AfterRequest  *CacheState `json:"afterRequest,omitempty"`
}

type CacheState struct {
	Expires    string `json:"expires,omitempty"`
	LastAccess string `json:"lastAccess"`
	ETag       string `json:"eTag"`
	HitCount   int    `json:"hitCount"`
}

// Timings holds the phase durations in milliseconds. HAR uses -1 for phases
// that do not apply; a nil pointer means the collector omitted the field.
type Timings struct {
	Blocked *float64 `json:"blocked,omitempty"`
	DNS     *float64 `json:"dns,omitempty"`
	Connect *float64 `json:"connect,omitempty"`
	Send    *float64 `json:"send,omitempty"`
	Wait    *float64 `json:"wait,omitempty"`
	Receive *float64 `json:"receive,omitempty"`
	SSL     *float64 `json:"ssl,omitempty"`
}

type entryAlias Entry

// UnmarshalJSON decodes the entry and keeps the source bytes so fields that
// are not modelled here still show up in raw dumps.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var alias entryAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	*e = Entry(alias)
	e.raw = append(json.RawMessage(nil), data...)
	return nil
}

// Raw returns the JSON the entry was decoded from, or a fresh encoding when
// the entry was built in code.
func (e *Entry) Raw() ([]byte, error) {
	if len(e.raw) > 0 {
		return e.raw, nil
	}
	return json.Marshal((*entryAlias)(e))
}
