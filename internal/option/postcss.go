package option

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// PostcssOption maps plugin names to their options and remembers insertion
// order, which decides the order dynamic plugins are appended in. A nil entry
// is a present name whose option is absent.
type PostcssOption struct {
	names   []string
	entries map[string]*PluginOption
}

// New returns an empty PostcssOption.
func New() *PostcssOption {
	return &PostcssOption{entries: map[string]*PluginOption{}}
}

// Set stores opt under name. Existing names keep their original position.
func (p *PostcssOption) Set(name string, opt *PluginOption) {
	if p.entries == nil {
		p.entries = map[string]*PluginOption{}
	}
	if _, exists := p.entries[name]; !exists {
		p.names = append(p.names, name)
	}
	p.entries[name] = opt
}

// Get returns the option stored under name. Nil receivers and missing names
// return nil.
func (p *PostcssOption) Get(name string) *PluginOption {
	if p == nil {
		return nil
	}
	return p.entries[name]
}

// Has reports whether name is present, even with a nil option.
func (p *PostcssOption) Has(name string) bool {
	if p == nil {
		return false
	}
	_, ok := p.entries[name]
	return ok
}

// Names returns plugin names in insertion order.
func (p *PostcssOption) Names() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.names...)
}

// Len returns the number of names.
func (p *PostcssOption) Len() int {
	if p == nil {
		return 0
	}
	return len(p.names)
}

// UnmarshalYAML decodes a mapping while keeping document order. Plugin names
// are kept verbatim.
func (p *PostcssOption) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.AliasNode && value.Alias != nil {
		value = value.Alias
	}
	if value.Kind == yaml.ScalarNode && value.Tag == "!!null" {
		*p = PostcssOption{entries: map[string]*PluginOption{}}
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("option: postcss options must be a mapping (line %d)", value.Line)
	}
	parsed := PostcssOption{entries: make(map[string]*PluginOption, len(value.Content)/2)}
	for i := 0; i+1 < len(value.Content); i += 2 {
		keyNode, valNode := value.Content[i], value.Content[i+1]
		name := keyNode.Value
		if parsed.Has(name) {
			return fmt.Errorf("option: duplicate plugin %s (line %d)", name, keyNode.Line)
		}
		if valNode.Kind == yaml.ScalarNode && valNode.Tag == "!!null" {
			parsed.Set(name, nil)
			continue
		}
		var opt PluginOption
		if err := valNode.Decode(&opt); err != nil {
			return fmt.Errorf("option: %s: %w", name, err)
		}
		parsed.Set(name, &opt)
	}
	*p = parsed
	return nil
}

// MarshalYAML encodes the options as a mapping in insertion order.
func (p PostcssOption) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range p.names {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
		val := &yaml.Node{}
		if opt := p.entries[name]; opt == nil {
			val.Kind, val.Tag, val.Value = yaml.ScalarNode, "!!null", "null"
		} else if err := val.Encode(opt); err != nil {
			return nil, fmt.Errorf("option: encode %s: %w", name, err)
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}
