package facts

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sigreer/zfsfacts/internal/zfs"
	"gopkg.in/yaml.v3"
)

// datasetParams is the args document accepted for dataset queries. JSON is
// valid YAML, so one decoder covers both.
type datasetParams struct {
	Name       string   `yaml:"name"`
	DS         string   `yaml:"ds"`
	Dataset    string   `yaml:"dataset"`
	Recurse    flexBool `yaml:"recurse"`
	Parsable   flexBool `yaml:"parsable"`
	Properties string   `yaml:"properties"`
	Props      string   `yaml:"props"`
	Type       string   `yaml:"type"`
	Depth      *flexInt `yaml:"depth"`
}

type poolParams struct {
	Name       string   `yaml:"name"`
	Pool       string   `yaml:"pool"`
	Zpool      string   `yaml:"zpool"`
	Parsable   flexBool `yaml:"parsable"`
	Properties string   `yaml:"properties"`
	Props      string   `yaml:"props"`
}

// ParseDatasetArgs decodes a dataset args document. Keys starting with an
// underscore (orchestrator internals such as _ansible_check_mode) are ignored.
func ParseDatasetArgs(data []byte) (zfs.DatasetRequest, error) {
	var p datasetParams
	if err := yaml.Unmarshal(data, &p); err != nil {
		return zfs.DatasetRequest{}, &zfs.InvalidRequestError{Field: "arguments", Reason: err.Error()}
	}

	name, err := coalesce("name", p.Name, p.DS, p.Dataset)
	if err != nil {
		return zfs.DatasetRequest{}, err
	}
	props, err := coalesce("properties", p.Properties, p.Props)
	if err != nil {
		return zfs.DatasetRequest{}, err
	}

	req := zfs.DatasetRequest{
		Name:       name,
		Recurse:    bool(p.Recurse),
		Parsable:   bool(p.Parsable),
		Properties: props,
		Type:       p.Type,
	}
	if p.Depth != nil {
		req.Depth = int(*p.Depth)
	}
	req = req.WithDefaults()
	return req, req.Validate()
}

// ParsePoolArgs decodes a pool args document.
func ParsePoolArgs(data []byte) (zfs.PoolRequest, error) {
	var p poolParams
	if err := yaml.Unmarshal(data, &p); err != nil {
		return zfs.PoolRequest{}, &zfs.InvalidRequestError{Field: "arguments", Reason: err.Error()}
	}

	name, err := coalesce("name", p.Name, p.Pool, p.Zpool)
	if err != nil {
		return zfs.PoolRequest{}, err
	}
	props, err := coalesce("properties", p.Properties, p.Props)
	if err != nil {
		return zfs.PoolRequest{}, err
	}

	req := zfs.PoolRequest{Name: name, Parsable: bool(p.Parsable), Properties: props}.WithDefaults()
	return req, req.Validate()
}

// coalesce picks the single value set across a parameter and its aliases.
func coalesce(field string, values ...string) (string, error) {
	var picked string
	for _, v := range values {
		if v == "" {
			continue
		}
		if picked != "" && picked != v {
			return "", &zfs.InvalidRequestError{
				Field:  field,
				Reason: fmt.Sprintf("conflicting values %q and %q given through aliases", picked, v),
			}
		}
		picked = v
	}
	return picked, nil
}

// flexBool accepts YAML booleans as well as quoted strings such as "yes",
// "True" or "1", which templated arguments tend to produce.
type flexBool bool

func (b *flexBool) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a boolean", value.Line)
	}
	s := strings.ToLower(strings.TrimSpace(value.Value))
	switch s {
	case "yes", "y", "on":
		*b = true
		return nil
	case "no", "n", "off":
		*b = false
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("line %d: %q is not a valid boolean", value.Line, value.Value)
	}
	*b = flexBool(v)
	return nil
}

// flexInt accepts YAML integers and quoted decimal strings.
type flexInt int

func (i *flexInt) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected an integer", value.Line)
	}
	v, err := strconv.Atoi(strings.TrimSpace(value.Value))
	if err != nil {
		return fmt.Errorf("line %d: %q is not a valid integer", value.Line, value.Value)
	}
	*i = flexInt(v)
	return nil
}
