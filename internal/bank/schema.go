package bank

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://question-bank.json"

// bankSchema describes the persisted question list.
const bankSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "question", "answer"],
    "properties": {
      "id":       {"type": "string", "minLength": 1},
      "question": {"type": "string"},
      "answer":   {"type": "string"},
      "category": {"type": ["string", "null"]}
    }
  }
}`

var (
	compiledOnce   sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func validateDocument(doc any) error {
	compiledOnce.Do(func() {
		compiledSchema, compileErr = compileBankSchema()
	})
	if compileErr != nil {
		return fmt.Errorf("compile bank schema: %w", compileErr)
	}
	return compiledSchema.Validate(doc)
}

func compileBankSchema() (*jsonschema.Schema, error) {
	var def any
	if err := json.Unmarshal([]byte(bankSchema), &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
}
