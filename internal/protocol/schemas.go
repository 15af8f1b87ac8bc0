package protocol

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

var schemaByType = map[string]string{
	TypeMatch:    "match_state.schema.json",
	TypeDelivery: "delivery_state.schema.json",
	TypeGrow:     "grow_state.schema.json",
}

var compiled map[string]*jsonschema.Schema

func init() {
	compiled = make(map[string]*jsonschema.Schema, len(schemaByType))
	c := jsonschema.NewCompiler()
	for typ, name := range schemaByType {
		b, err := schemaFS.ReadFile("schemas/" + name)
		if err != nil {
			panic(fmt.Sprintf("protocol: read schema %s: %v", name, err))
		}
		url := "https://droog.gg/schemas/" + name
		if err := c.AddResource(url, strings.NewReader(string(b))); err != nil {
			panic(fmt.Sprintf("protocol: add schema %s: %v", name, err))
		}
		s, err := c.Compile(url)
		if err != nil {
			panic(fmt.Sprintf("protocol: compile schema %s: %v", name, err))
		}
		compiled[typ] = s
	}
}

// Validate checks a raw relay payload against the schema for its type tag.
// Untagged (legacy) payloads skip validation; Decode migrates them to the
// canonical shape, and that is what downstream code consumes.
func Validate(b []byte) error {
	base, err := DecodeBase(b)
	if err != nil {
		return fmt.Errorf("protocol: decode base: %w", err)
	}
	s, ok := compiled[base.Type]
	if !ok {
		return nil
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("protocol: %s: %w", base.Type, err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("protocol: %s: %w", base.Type, err)
	}
	return nil
}
