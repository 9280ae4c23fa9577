package arbor

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML document into a raw forest ready for Normalize or
// Chart.SetData. The document is either a single mapping (one tree) or a
// sequence of mappings (a forest); each mapping's "children" entry, if
// present, is a sequence of further mappings, and every other entry becomes a
// payload field.
//
//	label: CEO
//	children:
//	  - label: CTO
//	  - label: CFO
//
// Malformed documents fail with a descriptive error and no partial result.
func ParseYAML(data []byte) ([]*RawNode, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("arbor: parse dataset: %w", err)
	}
	return rawForest(doc)
}
