package har

import (
	"encoding/json"
	"io"
	"os"

	"github.com/unkn0wn-root/harview/internal/errdef"
)

// Decode reads a HAR document from r. Only JSON syntax is checked; the HAR
// schema itself is not validated.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, errdef.Wrap(errdef.CodeParse, err, "decode har")
	}
	return &doc, nil
}

// Load opens and decodes the HAR file at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeFilesystem, err, "open %s", path)
	}
	defer f.Close()
	return Decode(f)
}
