package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bethropolis/jotter/internal/logger"
	"github.com/bethropolis/jotter/internal/notetree"
)

// document is the serialized form of one node.
type document struct {
	Name     string      `json:"name" yaml:"name"`
	Kind     string      `json:"kind,omitempty" yaml:"kind,omitempty"`
	IsFolder *bool       `json:"is_folder,omitempty" yaml:"is_folder,omitempty"` // older files
	Content  string      `json:"content,omitempty" yaml:"content,omitempty"`
	Children []*document `json:"children,omitempty" yaml:"children,omitempty"`
}

func (d *document) isContainer() bool {
	switch d.Kind {
	case notetree.KindContainer.String():
		return true
	case notetree.KindLeaf.String():
		return false
	}
	if d.IsFolder != nil {
		return *d.IsFolder
	}
	return len(d.Children) > 0
}

// MarshalYAML writes note content double-quoted. Block scalars lose some
// combinations of leading and trailing newlines.
func (d *document) MarshalYAML() (interface{}, error) {
	return d.yamlNode(), nil
}

func (d *document) yamlNode() *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	add := func(key string, value *yaml.Node) {
		node.Content = append(node.Content, yamlString(key, 0), value)
	}

	add("name", yamlString(d.Name, 0))
	if d.Kind != "" {
		add("kind", yamlString(d.Kind, 0))
	}
	if d.IsFolder != nil {
		add("is_folder", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(*d.IsFolder)})
	}
	if d.Content != "" {
		add("content", yamlString(d.Content, yaml.DoubleQuotedStyle))
	}
	if len(d.Children) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, child := range d.Children {
			seq.Content = append(seq.Content, child.yamlNode())
		}
		add("children", seq)
	}
	return node
}

func yamlString(value string, style yaml.Style) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value, Style: style}
}

// codec converts documents to and from bytes.
type codec interface {
	Format() string
	Marshal(doc *document) ([]byte, error)
	Unmarshal(data []byte, doc *document) error
}

type jsonCodec struct{}

func (jsonCodec) Format() string { return FormatJSON }

func (jsonCodec) Marshal(doc *document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (jsonCodec) Unmarshal(data []byte, doc *document) error {
	return json.Unmarshal(data, doc)
}

type yamlCodec struct{}

func (yamlCodec) Format() string { return FormatYAML }

func (yamlCodec) Marshal(doc *document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (yamlCodec) Unmarshal(data []byte, doc *document) error {
	return yaml.Unmarshal(data, doc)
}

// codecForPath picks a codec from the file extension. ".goon" project files are JSON.
func codecForPath(path string) (codec, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", DefaultExtension:
		return jsonCodec{}, true
	case ".yaml", ".yml":
		return yamlCodec{}, true
	}
	return nil, false
}

// encodeTree builds the document for t, leaving out the subtree at skip (0 skips nothing).
func encodeTree(t *notetree.Tree, skip notetree.ID) *document {
	var build func(n notetree.Node) *document
	build = func(n notetree.Node) *document {
		doc := &document{Name: n.Name(), Kind: n.Kind().String()}
		switch v := n.(type) {
		case *notetree.Container:
			for _, child := range v.Children() {
				if child.ID() == skip {
					continue
				}
				doc.Children = append(doc.Children, build(child))
			}
		case *notetree.Leaf:
			doc.Content = v.Content()
		}
		return doc
	}
	return build(t.Root())
}

// decodeTree rebuilds a tree from doc. The document root always maps to the tree root.
func decodeTree(doc *document) (*notetree.Tree, error) {
	t := notetree.New()
	var add func(parent notetree.ID, children []*document) error
	add = func(parent notetree.ID, children []*document) error {
		for _, child := range children {
			if child == nil {
				continue
			}
			if child.isContainer() {
				c, err := t.AddContainer(parent, child.Name)
				if err != nil {
					return fmt.Errorf("invalid folder %q: %w", child.Name, err)
				}
				if err := add(c.ID(), child.Children); err != nil {
					return err
				}
				continue
			}
			if len(child.Children) > 0 {
				logger.WarnTagf("store", "FileStore: Note %q has children; ignoring them", child.Name)
			}
			if _, err := t.AddLeaf(parent, child.Name, child.Content); err != nil {
				return fmt.Errorf("invalid note %q: %w", child.Name, err)
			}
		}
		return nil
	}
	if err := add(notetree.RootID, doc.Children); err != nil {
		return nil, err
	}
	return t, nil
}
