package extraction

import "sort"

// FormFieldType represents the type of a form field
type FormFieldType string

const (
	FormFieldTypeText      FormFieldType = "text"
	FormFieldTypeCheckbox  FormFieldType = "checkbox"
	FormFieldTypeRadio     FormFieldType = "radio"
	FormFieldTypeSelect    FormFieldType = "select"
	FormFieldTypeButton    FormFieldType = "button"
	FormFieldTypeSignature FormFieldType = "signature"
	FormFieldTypeUnknown   FormFieldType = "unknown"
)

// FormField is a single decoded AcroForm field.
//
// Value holds the field's /V entry rendered as text. Name objects keep their
// leading slash, so a checkbox whose "on" state is exported as 1 reads "/1".
// HasValue is false when the field carries no /V at all.
type FormField struct {
	Name     string        `json:"name"`
	Type     FormFieldType `json:"type"`
	Value    string        `json:"value,omitempty"`
	HasValue bool          `json:"has_value"`
	Required bool          `json:"required"`
	ReadOnly bool          `json:"read_only"`
}

// Fields maps fully qualified field names to their decoded descriptors
type Fields map[string]FormField

// Names returns the field names in lexical order
func (f Fields) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the descriptor for name and whether it exists
func (f Fields) Lookup(name string) (FormField, bool) {
	field, ok := f[name]
	return field, ok
}
