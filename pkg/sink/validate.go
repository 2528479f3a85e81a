package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/el-remph/hertzian-steam-tech-test/pkg/review"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// batchSchema constrains one serialized batch: an array of canonical
// records with hex-224 identifiers, calendar dates and the fixed source
// marker.
const batchSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"id":          {"type": "string", "pattern": "^[A-Fa-f0-9]{56}$"},
			"author":      {"type": "string", "pattern": "^[A-Fa-f0-9]{56}$"},
			"date":        {"type": "string", "format": "date"},
			"hours":       {"type": "integer"},
			"content":     {"type": "string"},
			"comments":    {"type": "integer"},
			"source":      {"type": "string", "pattern": "^steam$"},
			"helpful":     {"type": "integer"},
			"funny":       {"type": "integer"},
			"recommended": {"type": "boolean"}
		}
	}
}`

// Validator checks completed batches against the output schema. It is an
// optional post-write checker: validation runs after the batch is on disk,
// so a failing batch can still be inspected.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the output schema.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource("batch.schema.json", strings.NewReader(batchSchema)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile("batch.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Validate checks an ordered batch of records against the output schema.
func (v *Validator) Validate(records []review.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("decode records: %w", err)
	}

	if err := v.schema.Validate(decoded); err != nil {
		return fmt.Errorf("batch failed schema validation: %w", err)
	}
	return nil
}

// ValidatingSink wraps another sink and validates each batch after the
// inner write has completed, so invalid output is persisted for inspection
// before the failure is surfaced.
type ValidatingSink struct {
	Inner     Sink
	Validator *Validator
}

// Write implements Sink.
func (s *ValidatingSink) Write(ctx context.Context, b Batch) error {
	if err := s.Inner.Write(ctx, b); err != nil {
		return err
	}
	if err := s.Validator.Validate(b.Records); err != nil {
		return fmt.Errorf("batch %s: %w", b.Name(), err)
	}
	return nil
}
