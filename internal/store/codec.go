package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"fjacquet/budget-csv/internal/models"

	"gopkg.in/yaml.v3"
)

// Format identifies the on-disk encoding of the category file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the encoding from the file extension; anything that is not
// .yaml or .yml is JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

var errWrongShape = errors.New("category file must be a mapping of category name to a list of keywords")

// decode parses an ordered category mapping. Key order and list order are kept.
func decode(data []byte, format Format) ([]models.CategoryConfig, error) {
	if format == FormatYAML {
		return decodeYAML(data)
	}
	return decodeJSON(data)
}

// encode serialises categories in order.
func encode(categories []models.CategoryConfig, format Format) ([]byte, error) {
	if format == FormatYAML {
		return encodeYAML(categories)
	}
	return encodeJSON(categories)
}

func decodeJSON(data []byte) ([]models.CategoryConfig, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("error parsing category file: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errWrongShape
	}

	var categories []models.CategoryConfig
	index := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("error parsing category file: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return nil, errWrongShape
		}

		var keywords []string
		if err := dec.Decode(&keywords); err != nil {
			return nil, fmt.Errorf("%w: category %q: %v", errWrongShape, name, err)
		}

		// A repeated key keeps its first position and its last value.
		if i, seen := index[name]; seen {
			categories[i].Keywords = keywords
			continue
		}
		index[name] = len(categories)
		categories = append(categories, models.CategoryConfig{Name: name, Keywords: keywords})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("error parsing category file: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error parsing category file: trailing data after top-level object")
	}

	return categories, nil
}

func encodeJSON(categories []models.CategoryConfig) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, category := range categories {
		if i > 0 {
			buf.WriteString(",")
		}
		name, err := json.Marshal(category.Name)
		if err != nil {
			return nil, err
		}
		keywords := category.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		list, err := json.MarshalIndent(keywords, "  ", "  ")
		if err != nil {
			return nil, err
		}
		buf.WriteString("\n  ")
		buf.Write(name)
		buf.WriteString(": ")
		buf.Write(list)
	}
	if len(categories) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func decodeYAML(data []byte) ([]models.CategoryConfig, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing category file: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, errWrongShape
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errWrongShape
	}

	var categories []models.CategoryConfig
	index := make(map[string]int)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, errWrongShape
		}
		name := keyNode.Value

		var keywords []string
		switch {
		case valueNode.Kind == yaml.ScalarNode && valueNode.Tag == "!!null":
		case valueNode.Kind == yaml.SequenceNode:
			if err := valueNode.Decode(&keywords); err != nil {
				return nil, fmt.Errorf("%w: category %q: %v", errWrongShape, name, err)
			}
		default:
			return nil, fmt.Errorf("%w: category %q", errWrongShape, name)
		}

		if j, seen := index[name]; seen {
			categories[j].Keywords = keywords
			continue
		}
		index[name] = len(categories)
		categories = append(categories, models.CategoryConfig{Name: name, Keywords: keywords})
	}
	return categories, nil
}

func encodeYAML(categories []models.CategoryConfig) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, category := range categories {
		list := &yaml.Node{Kind: yaml.SequenceNode}
		if len(category.Keywords) == 0 {
			list.Style = yaml.FlowStyle
		}
		for _, keyword := range category.Keywords {
			list.Content = append(list.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: keyword})
		}
		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: category.Name},
			list,
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, fmt.Errorf("error marshaling categories: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("error marshaling categories: %w", err)
	}
	return buf.Bytes(), nil
}
