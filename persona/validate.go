// SPDX-FileCopyrightText: Copyright 2026 Personify Authors
// SPDX-License-Identifier: Apache-2.0

package persona

import (
	"embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed data/persona.schema.json
var embeddedSchemaFS embed.FS

const schemaFile = "data/persona.schema.json"

// Validate validates the artifact content against the persona schema.
// Every violated constraint is collected into a single [*ValidationError];
// validation never stops at the first failure.
func (p *Persona) Validate() error {
	return ValidateBytes(p.Content)
}

// ValidateBytes validates raw artifact JSON against the persona schema.
func ValidateBytes(data []byte) error {
	schemaData, err := embeddedSchemaFS.ReadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("reading embedded schema %s: %w", schemaFile, err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaData),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("persona schema validation failed: %w", err)
	}

	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return &ValidationError{Errors: msgs}
}
