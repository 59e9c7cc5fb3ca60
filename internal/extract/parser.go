package extract

import (
	"strings"

	"gopkg.in/yaml.v3"

	"labelcheck/internal/models"
)

// Required record keys.
const (
	KeyID    = "id"
	KeyLabel = "label"
	KeyText  = "text"
)

// ParseBlock decodes a candidate block as a YAML sequence of records.
// Items that are not mappings or lack id, label or text are skipped.
// It reports false when the block does not decode, is not a sequence,
// or yields no complete record.
func ParseBlock(block string) ([]models.Record, bool) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(block), &doc); err != nil {
		return nil, false
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, false
	}

	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.SequenceNode {
		return nil, false
	}

	var records []models.Record

	for _, item := range root.Content {
		item = resolveAlias(item)
		if item.Kind != yaml.MappingNode {
			continue
		}

		fields := make(map[string]*yaml.Node, len(item.Content)/2)
		for i := 0; i+1 < len(item.Content); i += 2 {
			fields[item.Content[i].Value] = item.Content[i+1]
		}

		id, okID := fields[KeyID]
		label, okLabel := fields[KeyLabel]
		text, okText := fields[KeyText]

		if !okID || !okLabel || !okText {
			continue
		}

		records = append(records, models.Record{
			ID:    nodeText(id),
			Label: nodeText(label),
			Text:  nodeText(text),
		})
	}

	if len(records) == 0 {
		return nil, false
	}

	return records, true
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}

	return n
}

// nodeText coerces a value node to text. Scalars keep their literal text,
// null becomes empty, anything else is re-encoded as YAML.
func nodeText(n *yaml.Node) string {
	n = resolveAlias(n)

	if n.Kind == yaml.ScalarNode {
		if n.Tag == "!!null" {
			return ""
		}

		return n.Value
	}

	out, err := yaml.Marshal(n)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(out))
}
