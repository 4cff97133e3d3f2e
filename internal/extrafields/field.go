// Package extrafields implements the extra-field registry stored in the
// settings table: typed field descriptors and pure merge/remove operations
// over the JSON-encoded field list of an entity type.
package extrafields

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// SettingKeySpool is the settings-store key holding the spool field list.
const SettingKeySpool = "extra_fields_spool"

// FieldType enumerates the supported field kinds.
type FieldType string

// Supported field types.
const (
	FieldTypeText   FieldType = "text"
	FieldTypeNumber FieldType = "number"
	FieldTypeChoice FieldType = "choice"
)

// Field describes one user-configurable attribute of an entity type.
// Optional attributes are pointers or raw JSON so that absent values
// round-trip as JSON null, matching what consumers of the registry expect.
type Field struct {
	Key          string          `json:"key"           validate:"required"`
	EntityType   string          `json:"entity_type"   validate:"required"`
	Name         string          `json:"name"          validate:"required"`
	Order        int             `json:"order"`
	Unit         *string         `json:"unit"`
	FieldType    FieldType       `json:"field_type"    validate:"required,oneof=text number choice"`
	DefaultValue json.RawMessage `json:"default_value"`
	Choices      []string        `json:"choices"       validate:"required_if=FieldType choice"`
	MultiChoice  *bool           `json:"multi_choice"`
}

var fieldValidator = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals

// Validate checks the descriptor before it is written to the store.
// Existing list elements are never validated, only passed through.
func (f Field) Validate() error {
	return fieldValidator.Struct(f) //nolint:wrapcheck
}

// NFCTagID returns the canonical NFC tag descriptor for spools.
func NFCTagID() Field {
	return Field{
		Key:        "nfc_id",
		EntityType: "spool",
		Name:       "NFC Tag ID",
		Order:      0,
		FieldType:  FieldTypeText,
	}
}
