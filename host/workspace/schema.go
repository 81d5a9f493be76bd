package workspace

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/invopop/jsonschema"
	santhosh "github.com/santhosh-tekuri/jsonschema/v5"
)

const (
	workspaceSchemaURL = "https://reglet.dev/schemas/artifactregistry/workspace.json"
	projectSchemaURL   = "https://reglet.dev/schemas/artifactregistry/project.json"
)

func newReflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		FieldNameTag:   "yaml",
		ExpandedStruct: true,
		Anonymous:      true,
	}
}

// Schema returns the JSON schema of the workspace file format.
func Schema() ([]byte, error) {
	return reflectSchema(&File{}, workspaceSchemaURL)
}

// ProjectSchema returns the JSON schema of an included project document.
func ProjectSchema() ([]byte, error) {
	return reflectSchema(&ProjectFile{}, projectSchemaURL)
}

func reflectSchema(model any, id string) ([]byte, error) {
	s := newReflector().Reflect(model)
	s.ID = jsonschema.ID(id)
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generated schema: %w", err)
	}
	return b, nil
}

// validator checks YAML documents against a generated schema.
type validator struct {
	schema *santhosh.Schema
}

func newValidator(id string, schemaJSON []byte) (*validator, error) {
	c := santhosh.NewCompiler()
	if err := c.AddResource(id, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	s, err := c.Compile(id)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return &validator{schema: s}, nil
}

func newWorkspaceValidator() (*validator, error) {
	b, err := Schema()
	if err != nil {
		return nil, err
	}
	return newValidator(workspaceSchemaURL, b)
}

func newProjectValidator() (*validator, error) {
	b, err := ProjectSchema()
	if err != nil {
		return nil, err
	}
	return newValidator(projectSchemaURL, b)
}

// Validate converts a YAML document to JSON and validates it.
func (v *validator) Validate(doc []byte) error {
	if len(bytes.TrimSpace(doc)) == 0 {
		return fmt.Errorf("%w: empty document", ErrInvalidWorkspace)
	}

	jsonDoc, err := yaml.YAMLToJSON(doc)
	if err != nil {
		return fmt.Errorf("converting YAML: %w", err)
	}

	var value any
	if err := json.Unmarshal(jsonDoc, &value); err != nil {
		return fmt.Errorf("decoding document: %w", err)
	}
	if value == nil {
		return fmt.Errorf("%w: empty document", ErrInvalidWorkspace)
	}

	if err := v.schema.Validate(value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWorkspace, err)
	}
	return nil
}
