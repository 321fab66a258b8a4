package ai

import (
	"encoding/json"
	"fmt"

	"backoffice/internal/common/errors"
	"backoffice/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// extractionSchema mirrors the four-key contract of the system prompt. All
// four keys must be present; null stands in for absent values.
const extractionSchema = `{
	"type": "object",
	"properties": {
		"taakOmschrijving": {"type": "string", "minLength": 1},
		"bedrijfsnaam": {"type": ["string", "null"]},
		"deadlineString": {"type": ["string", "null"]},
		"weeknummer": {"type": ["integer", "null"]}
	},
	"required": ["taakOmschrijving", "bedrijfsnaam", "deadlineString", "weeknummer"]
}`

var extractionSchemaLoader = gojsonschema.NewStringLoader(extractionSchema)

// ParseExtraction parses and shape-checks the raw completion text. On any
// violation it returns a MALFORMED_EXTRACTION error carrying the raw text.
//
// When the model supplies both a deadline string and a week number despite
// the prompt, the week number takes precedence and the deadline is dropped.
func ParseExtraction(raw string) (*models.ExtractionResult, error) {
	documentLoader := gojsonschema.NewStringLoader(raw)

	result, err := gojsonschema.Validate(extractionSchemaLoader, documentLoader)
	if err != nil {
		// Not parseable as JSON at all
		return nil, errors.NewMalformedExtractionError(raw, err)
	}
	if !result.Valid() {
		var details string
		for _, desc := range result.Errors() {
			if details != "" {
				details += "; "
			}
			details += desc.String()
		}
		return nil, errors.NewMalformedExtractionError(raw, fmt.Errorf("schema violation: %s", details))
	}

	var extraction models.ExtractionResult
	if err := json.Unmarshal([]byte(raw), &extraction); err != nil {
		return nil, errors.NewMalformedExtractionError(raw, err)
	}

	if extraction.WeekNumber != nil && extraction.Deadline != nil {
		extraction.Deadline = nil
	}

	return &extraction, nil
}
