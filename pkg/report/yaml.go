package report

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/lisanmuaddib/trendgraph/pkg/analytics"
)

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

// recordNode builds a mapping node whose keys follow Fields().
func recordNode(rec analytics.Record) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range rec.Fields() {
		var value yaml.Node
		if err := value.Encode(f.Value); err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		node.Content = append(node.Content, scalar(f.Name), &value)
	}
	return node, nil
}

func sectionNode(s Section) (*yaml.Node, error) {
	records := &yaml.Node{Kind: yaml.SequenceNode, Content: []*yaml.Node{}}
	for _, rec := range s.Records {
		n, err := recordNode(rec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Operation, err)
		}
		records.Content = append(records.Content, n)
	}

	return &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			scalar("operation"), scalar(s.Operation),
			scalar("records"), records,
		},
	}, nil
}

// renderYAML writes a single document: a list of operation/records mappings.
func (r *Renderer) renderYAML(sections []Section) error {
	doc := &yaml.Node{Kind: yaml.SequenceNode}
	for _, s := range sections {
		n, err := sectionNode(s)
		if err != nil {
			return err
		}
		doc.Content = append(doc.Content, n)
	}

	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
