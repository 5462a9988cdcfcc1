package broker

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/supercpe/cpe-tracker/constants"
	"github.com/supercpe/cpe-tracker/internal/entity"
)

// BuildPayloadJSONSchema returns a JSON-Schema (draft 2020-12 subset) for the
// broker submission payload as a generic map. It pins date shape, hour
// precision and the category/course-type enumerations.
func BuildPayloadJSONSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"category": map[string]any{
				"type": "string",
				"enum": []string{
					string(constants.CategoryGeneralCPE),
					string(constants.CategoryProfessionalEthics),
				},
			},
			"course_name":   map[string]any{"type": "string", "minLength": 1},
			"course_code":   map[string]any{"type": "string", "minLength": 1},
			"provider_name": map[string]any{"type": "string", "minLength": 1},
			"completion_date": map[string]any{
				"type":    "string",
				"pattern": `^\d{2}/\d{2}/\d{4}$`,
			},
			"hours": map[string]any{
				"type":    "string",
				"pattern": `^\d+\.\d$`,
			},
			"course_type": map[string]any{
				"type": "string",
				"enum": []string{
					string(constants.CourseTypeLive),
					string(constants.CourseTypeComputerBased),
					string(constants.CourseTypeCorrespond),
					string(constants.CourseTypePrerecorded),
				},
			},
			"subjects": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    map[string]any{"type": "string", "minLength": 1},
			},
			"field_of_study":       map[string]any{"type": "string", "minLength": 1},
			"nasba_sponsor":        map[string]any{"type": "string", "minLength": 1},
			"organization_id":      map[string]any{"type": "string", "minLength": 1},
			"form_version":         map[string]any{"type": "string", "minLength": 1},
			"certificate_filename": map[string]any{"type": "string"},
		},
		"required": []string{
			"category", "course_name", "course_code", "provider_name",
			"completion_date", "hours", "course_type", "subjects",
			"field_of_study", "nasba_sponsor", "organization_id", "form_version",
		},
	}
}

// ValidatePayload checks a payload against the broker form schema.
func ValidatePayload(payload entity.BrokerPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return validateAgainstSchema(BuildPayloadJSONSchema(), data)
}

// validateAgainstSchema validates data against schemaMap.
func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
