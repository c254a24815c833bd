package client

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"humantask/backend/payload"
)

// validateInput checks the task input against the definition's JSON
// schema. A missing input is validated as JSON null so schemas can require
// a document.
func validateInput(definitionID string, schema json.RawMessage, input payload.Payload) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schema))
	if err != nil {
		return fmt.Errorf("parsing input schema for %q: %w", definitionID, err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", doc); err != nil {
		return fmt.Errorf("adding input schema for %q: %w", definitionID, err)
	}

	sch, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compiling input schema for %q: %w", definitionID, err)
	}

	if len(input) == 0 {
		input = payload.Payload("null")
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(input))
	if err != nil {
		return fmt.Errorf("parsing task input: %w", err)
	}

	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("validating task input: %w", err)
	}

	return nil
}
