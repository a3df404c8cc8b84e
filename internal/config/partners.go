package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Partner pairs a partner id with its configuration.
type Partner struct {
	ID     string
	Config PartnerConfig
}

// Partners keeps partner configurations in declaration order.
type Partners []Partner

// UnmarshalYAML decodes the `partners` mapping without losing key order and
// fills in per-partner defaults.
func (ps *Partners) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" {
		*ps = nil

		return nil
	}

	if value.Kind != yaml.MappingNode {
		return ErrInvalidPartnersBlock
	}

	seen := make(map[string]bool, len(value.Content)/2)
	out := make(Partners, 0, len(value.Content)/2)

	for i := 0; i+1 < len(value.Content); i += 2 {
		id := value.Content[i].Value
		if seen[id] {
			return fmt.Errorf("%w: %q", ErrDuplicatePartner, id)
		}

		seen[id] = true

		pc := PartnerConfig{
			Encoding:  DefaultEncoding,
			HasHeader: true,
		}
		if err := value.Content[i+1].Decode(&pc); err != nil {
			return fmt.Errorf("partner %q: %w", id, err)
		}

		out = append(out, Partner{ID: id, Config: pc})
	}

	*ps = out

	return nil
}

// MarshalYAML encodes the partners back into an ordered mapping.
func (ps Partners) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}

	for _, p := range ps {
		var value yaml.Node
		if err := value.Encode(p.Config); err != nil {
			return nil, fmt.Errorf("partner %q: %w", p.ID, err)
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.ID},
			&value,
		)
	}

	return node, nil
}

// IDs returns the partner ids in declaration order.
func (ps Partners) IDs() []string {
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}

	return ids
}
