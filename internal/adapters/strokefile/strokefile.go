// Package strokefile reads and writes recorded strokes and pointer scripts.
//
// A stroke file holds either a bare list of points or a document with a
// "points" key; a script file holds a list of events or an "events" key.
// Both JSON and YAML are accepted.
package strokefile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okian/enso/internal/domain/model"
)

// Format is a file encoding.
type Format string

// Supported formats. Auto sniffs the content.
const (
	Auto Format = ""
	JSON Format = "json"
	YAML Format = "yaml"
)

// Sentinel errors.
var (
	ErrDecode        = errors.New("decode stroke file")
	ErrUnknownFormat = errors.New("unknown stroke file format")
)

// ParseFormat resolves a format name. Empty means Auto.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return Auto, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return Auto, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON
	case ".yaml", ".yml":
		return YAML
	default:
		return Auto
	}
}

type pointsDoc struct {
	Points []model.Point `json:"points" yaml:"points"`
}

type eventsDoc struct {
	Events []model.PointerEvent `json:"events" yaml:"events"`
}

// ReadPoints decodes a stroke.
func ReadPoints(r io.Reader, format Format) ([]model.Point, error) {
	var list []model.Point
	var doc pointsDoc
	if err := decode(r, format, &list, &doc); err != nil {
		return nil, err
	}
	if list != nil {
		return list, nil
	}
	return doc.Points, nil
}

// ReadEvents decodes a pointer script.
func ReadEvents(r io.Reader, format Format) ([]model.PointerEvent, error) {
	var list []model.PointerEvent
	var doc eventsDoc
	if err := decode(r, format, &list, &doc); err != nil {
		return nil, err
	}
	if list != nil {
		return list, nil
	}
	return doc.Events, nil
}

// LoadPoints reads a stroke file from disk.
func LoadPoints(path string) ([]model.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ReadPoints(f, FormatFromPath(path))
}

// LoadEvents reads a script file from disk.
func LoadEvents(path string) ([]model.PointerEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ReadEvents(f, FormatFromPath(path))
}

// WritePoints encodes a stroke as a {"points": [...]} document. Auto writes JSON.
func WritePoints(w io.Writer, points []model.Point, format Format) error {
	doc := pointsDoc{Points: points}
	switch format {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case JSON, Auto:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// decode fills list when the document is a sequence, doc otherwise.
func decode(r io.Reader, format Format, list, doc any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("%w: empty input", ErrDecode)
	}

	if format == Auto {
		format = YAML
		if data[0] == '{' || data[0] == '[' {
			format = JSON
		}
	}

	switch format {
	case JSON:
		target := doc
		if data[0] == '[' {
			target = list
		}
		err = json.Unmarshal(data, target)
	case YAML:
		err = decodeYAML(data, list, doc)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}

func decodeYAML(data []byte, list, doc any) error {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return err
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return errors.New("no yaml document")
	}
	node := root.Content[0]
	if node.Kind == yaml.SequenceNode {
		return node.Decode(list)
	}
	return node.Decode(doc)
}
