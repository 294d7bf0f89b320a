package ir

import (
	"encoding/json"

	"github.com/goccy/go-yaml"
)

// ToYAML renders the IR of y as YAML. The document has the same shape as
// the JSON form.
func ToYAML(y *Node) ([]byte, error) {
	d, err := json.Marshal(y)
	if err != nil {
		return nil, err
	}
	return yaml.JSONToYAML(d)
}

// FromYAML is FromJSON for the YAML form.
func FromYAML(d []byte, dec LeafDecoder) (*Node, error) {
	j, err := yaml.YAMLToJSON(d)
	if err != nil {
		return nil, err
	}
	return FromJSON(j, dec)
}
