package schemafile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/salesforce/envariability"
)

// keySep joins TOML key paths; it cannot appear in a decoded key.
const keySep = "\x00"

func decodeTOML(data []byte) (*envariability.Group, error) {
	tree := make(map[string]any)
	md, err := toml.Decode(string(data), &tree)
	if err != nil {
		return nil, err
	}

	// Keys lists every key path in the order the document defines it.
	order := make(map[string][]string)
	seen := make(map[string]bool)
	for _, key := range md.Keys() {
		for i := range key {
			parent := strings.Join(key[:i], keySep)
			path := parent + keySep + key[i]
			if seen[path] {
				continue
			}
			seen[path] = true
			order[parent] = append(order[parent], key[i])
		}
	}
	return tomlGroup(tree, "", order), nil
}

func tomlGroup(table map[string]any, path string, order map[string][]string) *envariability.Group {
	g := &envariability.Group{}
	set := func(key string) {
		v := table[key]
		if sub, ok := v.(map[string]any); ok {
			child := key
			if path != "" {
				child = path + keySep + key
			}
			v = tomlGroup(sub, child, order)
		}
		g.Set(key, v)
	}
	for _, key := range order[path] {
		if _, ok := table[key]; ok {
			set(key)
		}
	}
	var rest []string
	for key := range table {
		if _, ok := g.Children[key]; !ok {
			rest = append(rest, key)
		}
	}
	slices.Sort(rest)
	for _, key := range rest {
		set(key)
	}
	return g
}

func decodeYAML(data []byte) (*envariability.Group, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return &envariability.Group{}, nil
	}
	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: schema root must be a mapping", root.Line)
	}
	return yamlGroup(root)
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func yamlGroup(n *yaml.Node) (*envariability.Group, error) {
	g := &envariability.Group{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], resolveAlias(n.Content[i+1])
		if key.Tag == "!!merge" {
			if err := yamlMerge(g, value); err != nil {
				return nil, err
			}
			continue
		}
		v, err := yamlValue(value)
		if err != nil {
			return nil, err
		}
		g.Set(key.Value, v)
	}
	return g, nil
}

// yamlMerge adds the keys of a merged mapping that g doesn't define yet.
func yamlMerge(g *envariability.Group, value *yaml.Node) error {
	sources := []*yaml.Node{value}
	if value.Kind == yaml.SequenceNode {
		sources = value.Content
	}
	for _, src := range sources {
		src = resolveAlias(src)
		if src.Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: merged value must be a mapping", src.Line)
		}
		merged, err := yamlGroup(src)
		if err != nil {
			return err
		}
		for _, key := range merged.Keys {
			if _, ok := g.Children[key]; !ok {
				g.Set(key, merged.Children[key])
			}
		}
	}
	return nil
}

func yamlValue(n *yaml.Node) (any, error) {
	if n.Kind == yaml.MappingNode {
		return yamlGroup(n)
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func decodeJSON(data []byte) (*envariability.Group, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	v, err := jsonValue(dec, true)
	if err != nil {
		return nil, err
	}
	g, ok := v.(*envariability.Group)
	if !ok {
		return nil, errors.New("schema root must be an object")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after the schema object")
	}
	return g, nil
}

// jsonValue decodes the next value of dec. Objects become groups while
// ordered is set; inside arrays they stay plain maps.
func jsonValue(dec *json.Decoder, ordered bool) (any, error) {
	if !ordered {
		var v any
		err := dec.Decode(&v)
		return v, err
	}
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		g := &envariability.Group{}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := tok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", tok)
			}
			v, err := jsonValue(dec, true)
			if err != nil {
				return nil, err
			}
			g.Set(key, v)
		}
		_, err := dec.Token()
		return g, err
	case '[':
		items := []any{}
		for dec.More() {
			v, err := jsonValue(dec, false)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		_, err := dec.Token()
		return items, err
	}
	return nil, fmt.Errorf("unexpected delimiter %v", delim)
}
