package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML document and returns its scalars as a MapStore keyed
// by dotted path, mirroring UCI's package.section.option addressing:
//
//	at-webserver:
//	  config:
//	    connection_type: SERIAL
//
// yields the key "at-webserver.config.connection_type". Scalars keep their
// source text verbatim and null values are skipped.
func LoadFile(path string) (*MapStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	values, err := parseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &MapStore{values: values}, nil
}

func parseYAML(data []byte) (map[string]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	values := make(map[string]string)
	if len(doc.Content) == 0 {
		return values, nil
	}
	if err := flatten("", doc.Content[0], values); err != nil {
		return nil, err
	}
	return values, nil
}

func flatten(prefix string, node *yaml.Node, out map[string]string) error {
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			if prefix != "" {
				key = prefix + "." + key
			}
			if err := flatten(key, node.Content[i+1], out); err != nil {
				return err
			}
		}
		return nil
	case yaml.ScalarNode:
		if prefix == "" {
			return fmt.Errorf("document root: %w", ErrUnsupportedValue)
		}
		if node.Tag == "!!null" {
			return nil
		}
		out[prefix] = node.Value
		return nil
	case yaml.AliasNode:
		return flatten(prefix, node.Alias, out)
	default:
		return fmt.Errorf("%s: %w", prefix, ErrUnsupportedValue)
	}
}
