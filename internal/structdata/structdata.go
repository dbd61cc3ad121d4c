// Package structdata loads key/value records from JSON or YAML files.
package structdata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/jonathan/application-generator/internal/locate"
	"gopkg.in/yaml.v3"
)

// DefaultSuffix is the structured-data file suffix used when none is configured
const DefaultSuffix = ".json"

// Record is a flat mapping of field names to their string values.
type Record struct {
	Source string
	Fields map[string]string
}

// Field returns the value stored under key.
func (r Record) Field(key string) (string, error) {
	value, ok := r.Fields[key]
	if !ok {
		return "", &MissingFieldError{Key: key, Source: r.Source}
	}
	return value, nil
}

// Keys returns the record's field names, sorted.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r.Fields))
	for key := range r.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Loader reads the single structured-data file of a directory.
type Loader struct {
	Suffix string
}

// NewLoader creates a Loader for files ending in suffix (DefaultSuffix if empty).
func NewLoader(suffix string) *Loader {
	if suffix == "" {
		suffix = DefaultSuffix
	}
	return &Loader{Suffix: suffix}
}

// Load locates the structured-data file in dir and parses it.
func (l *Loader) Load(dir string) (Record, error) {
	path, err := locate.Required(dir, l.Suffix)
	if err != nil {
		return Record{}, err
	}
	return LoadFile(path)
}

// LoadFile parses path, choosing the decoder from its extension.
func LoadFile(path string) (Record, error) {
	content, err := locate.ReadText(path)
	if err != nil {
		return Record{}, err
	}
	return Parse(path, []byte(content))
}

// Parse decodes data as YAML when path ends in .yaml or .yml, JSON otherwise.
// Every value is kept as the literal text written in the file, so a zip code
// such as 01067 is never read as a number.
func Parse(path string, data []byte) (Record, error) {
	var (
		fields map[string]string
		err    error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		fields, err = parseYAML(path, data)
	default:
		fields, err = parseJSON(path, data)
	}
	if err != nil {
		return Record{}, err
	}
	return Record{Source: path, Fields: fields}, nil
}

func parseJSON(path string, data []byte) (map[string]string, error) {
	var raw map[string]any
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		return nil, &MalformedDataError{Path: path, Message: "invalid JSON", Cause: err}
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, &MalformedDataError{Path: path, Message: "unexpected content after the top-level object", Cause: err}
	}
	if raw == nil {
		return nil, &MalformedDataError{Path: path, Message: "top level is not a mapping"}
	}

	fields := make(map[string]string, len(raw))
	for key, value := range raw {
		text, err := scalarString(value)
		if err != nil {
			return nil, &MalformedDataError{Path: path, Message: fmt.Sprintf("field %q", key), Cause: err}
		}
		fields[key] = text
	}
	return fields, nil
}

// scalarString renders a decoded JSON value. Numbers arrive as json.Number
// and keep their literal text.
func scalarString(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("expected a scalar value, got %T", value)
	}
}

// parseYAML walks the node tree instead of unmarshalling into Go values so
// that yaml.v3 never resolves scalars into ints, floats or timestamps.
func parseYAML(path string, data []byte) (map[string]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &MalformedDataError{Path: path, Message: "invalid YAML", Cause: err}
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, &MalformedDataError{Path: path, Message: "top level is not a mapping"}
	}

	fields := make(map[string]string, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, &MalformedDataError{Path: path, Message: fmt.Sprintf("line %d: key is not a scalar", keyNode.Line)}
		}
		if valueNode.Kind == yaml.AliasNode && valueNode.Alias != nil {
			valueNode = valueNode.Alias
		}
		if valueNode.Kind != yaml.ScalarNode {
			return nil, &MalformedDataError{
				Path:    path,
				Message: fmt.Sprintf("field %q", keyNode.Value),
				Cause:   fmt.Errorf("line %d: expected a scalar value", valueNode.Line),
			}
		}
		if valueNode.ShortTag() == "!!null" {
			fields[keyNode.Value] = ""
			continue
		}
		fields[keyNode.Value] = valueNode.Value
	}
	return fields, nil
}
