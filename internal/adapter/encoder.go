package adapter

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding for cases.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported output formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML}
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	for _, format := range Formats() {
		if string(format) == name {
			return format, nil
		}
	}

	return "", fmt.Errorf("unknown format %q", name)
}

// Encoder renders JSON documents and log records in an output format.
type Encoder interface {
	// EncodeDocument re-encodes a JSON document, keeping key order.
	EncodeDocument(document []byte) ([]byte, error)
	// EncodeValue encodes v.
	EncodeValue(v any) ([]byte, error)
	// Extension is the file extension for the format, without the dot.
	Extension() string
}

// NewEncoder returns the Encoder for format.
func NewEncoder(format Format) (Encoder, error) {
	switch format {
	case FormatJSON, "":
		return jsonEncoder{}, nil
	case FormatYAML:
		return yamlEncoder{}, nil
	case FormatTOML:
		return tomlEncoder{}, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

type jsonEncoder struct{}

func (jsonEncoder) EncodeDocument(document []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := json.Indent(&out, document, "", "  "); err != nil {
		return nil, fmt.Errorf("indent json: %w", err)
	}

	out.WriteByte('\n')

	return out.Bytes(), nil
}

func (jsonEncoder) EncodeValue(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(data, '\n'), nil
}

func (jsonEncoder) Extension() string {
	return "json"
}

type yamlEncoder struct{}

// EncodeDocument decodes the JSON (a YAML subset) into a node tree, which
// preserves key order, and re-emits it in block style.
func (yamlEncoder) EncodeDocument(document []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(document, &node); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	blockStyle(&node)

	return marshalYAML(&node)
}

func (yamlEncoder) EncodeValue(v any) ([]byte, error) {
	return marshalYAML(v)
}

func (yamlEncoder) Extension() string {
	return "yaml"
}

func marshalYAML(v any) ([]byte, error) {
	var out bytes.Buffer

	enc := yaml.NewEncoder(&out)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

func blockStyle(node *yaml.Node) {
	node.Style = 0

	for _, child := range node.Content {
		blockStyle(child)
	}
}

// logTableKey holds a top-level list, which TOML cannot express bare.
const logTableKey = "entries"

type tomlEncoder struct{}

// EncodeDocument re-encodes a JSON object as TOML. Keys come out sorted.
func (tomlEncoder) EncodeDocument(document []byte) ([]byte, error) {
	decoder := json.NewDecoder(bytes.NewReader(document))
	decoder.UseNumber()

	var tree map[string]any
	if err := decoder.Decode(&tree); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	return marshalTOML(tree)
}

func (tomlEncoder) EncodeValue(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var tree any
	if err := decoder.Decode(&tree); err != nil {
		return nil, err
	}

	table, ok := tree.(map[string]any)
	if !ok {
		table = map[string]any{logTableKey: tree}
	}

	return marshalTOML(table)
}

func (tomlEncoder) Extension() string {
	return "toml"
}

func marshalTOML(table map[string]any) ([]byte, error) {
	var out bytes.Buffer

	enc := toml.NewEncoder(&out)
	enc.Indent = ""

	if err := enc.Encode(tomlValue(table)); err != nil {
		return nil, fmt.Errorf("encode toml: %w", err)
	}

	return out.Bytes(), nil
}

// tomlValue turns JSON numbers into int64 or float64 so TOML keeps integers
// integral.
func tomlValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		for key, child := range value {
			value[key] = tomlValue(child)
		}

		return value
	case []any:
		for i, child := range value {
			value[i] = tomlValue(child)
		}

		return value
	case json.Number:
		if n, err := value.Int64(); err == nil {
			return n
		}

		f, _ := value.Float64()

		return f
	default:
		return v
	}
}
