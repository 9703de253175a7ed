package codec

import (
	"bytes"

	gojson "github.com/goccy/go-json"
)

// GoJSON is a JSON codec backed by github.com/goccy/go-json.
type GoJSON struct{}

// Marshal encodes the value to JSON.
func (GoJSON) Marshal(v any) ([]byte, error) { return gojson.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }

// Name returns the unique name of the codec ("go-json").
func (GoJSON) Name() string { return "go-json" }

// Indented wraps a codec and re-indents its output for humans.
type Indented struct {
	Codec Codec
}

// Marshal encodes v with the wrapped codec and indents the result by two spaces.
func (c Indented) Marshal(v any) ([]byte, error) {
	b, err := c.inner().Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := gojson.Indent(&buf, b, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes with the wrapped codec.
func (c Indented) Unmarshal(data []byte, v any) error { return c.inner().Unmarshal(data, v) }

// Name returns "json-indent".
func (Indented) Name() string { return "json-indent" }

func (c Indented) inner() Codec {
	if c.Codec == nil {
		return Default
	}
	return c.Codec
}
