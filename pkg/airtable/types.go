package airtable

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type FieldType string

const (
	FieldTypeSingleLineText   FieldType = "singleLineText"
	FieldTypeMultilineText    FieldType = "multilineText"
	FieldTypeSingleSelect     FieldType = "singleSelect"
	FieldTypeMultipleSelects  FieldType = "multipleSelects"
	FieldTypeDate             FieldType = "date"
	FieldTypeNumber           FieldType = "number"
	FieldTypeCreatedTime      FieldType = "createdTime"
	FieldTypeLastModifiedTime FieldType = "lastModifiedTime"
)

// IsSelect returns true for field types that require a list of choices.
func (t FieldType) IsSelect() bool {
	return t == FieldTypeSingleSelect || t == FieldTypeMultipleSelects
}

// IsTime returns true for field types that are rendered with a date format.
func (t FieldType) IsTime() bool {
	return t == FieldTypeDate || t == FieldTypeCreatedTime || t == FieldTypeLastModifiedTime
}

var knownFieldTypes = []any{
	FieldTypeSingleLineText,
	FieldTypeMultilineText,
	FieldTypeSingleSelect,
	FieldTypeMultipleSelects,
	FieldTypeDate,
	FieldTypeNumber,
	FieldTypeCreatedTime,
	FieldTypeLastModifiedTime,
}

const (
	// DateFormatLocal formats dates according to the viewer's locale.
	DateFormatLocal = "local"

	maxNumberPrecision = 8
)

type Choice struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

type DateFormat struct {
	Name   string `json:"name"`
	Format string `json:"format,omitempty"`
}

type FieldOptions struct {
	Choices     []Choice    `json:"choices,omitempty"`
	Precision   *int        `json:"precision,omitempty"`
	DateFormat  *DateFormat `json:"dateFormat,omitempty"`
	IncludeTime bool        `json:"includeTime,omitempty"`
}

func (o FieldOptions) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.Choices, validation.By(uniqueChoiceNames)),
		validation.Field(&o.Precision, validation.Min(0), validation.Max(maxNumberPrecision)),
	)
}

// Field is used both when describing a field to create and when reading one
// back from the API, in which case ID is populated.
type Field struct {
	ID      string        `json:"id,omitempty"`
	Name    string        `json:"name"`
	Type    FieldType     `json:"type"`
	Options *FieldOptions `json:"options,omitempty"`
}

func (f Field) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.Type, validation.Required, validation.In(knownFieldTypes...)),
		validation.Field(&f.Options,
			validation.When(f.Type.IsSelect(), validation.Required, validation.By(hasChoices)),
			validation.When(f.Type == FieldTypeNumber, validation.Required, validation.By(hasPrecision)),
		),
	)
}

// ChoiceNames returns the names of the field's choices in order.
func (f Field) ChoiceNames() []string {
	if f.Options == nil {
		return nil
	}

	names := make([]string, 0, len(f.Options.Choices))
	for _, c := range f.Options.Choices {
		names = append(names, c.Name)
	}

	return names
}

// CreateTableRequest is the payload of the create table endpoint.
type CreateTableRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields"`
}

func (r CreateTableRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Fields, validation.Required, validation.By(uniqueFieldNames)),
	)
}

// FieldByName returns the field with the given name, if any.
func (r CreateTableRequest) FieldByName(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

type Table struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	PrimaryFieldID string  `json:"primaryFieldId,omitempty"`
	Fields         []Field `json:"fields"`
}

type Tables struct {
	Tables []Table `json:"tables"`
}

func uniqueFieldNames(value any) error {
	fields, _ := value.([]Field)

	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, ok := seen[f.Name]; ok {
			return validation.NewError("validation_duplicate_field_name", fmt.Sprintf("duplicate field name %q", f.Name))
		}

		seen[f.Name] = struct{}{}
	}

	return nil
}

func uniqueChoiceNames(value any) error {
	choices, _ := value.([]Choice)

	seen := make(map[string]struct{}, len(choices))
	for _, c := range choices {
		if _, ok := seen[c.Name]; ok {
			return validation.NewError("validation_duplicate_choice", fmt.Sprintf("duplicate choice %q", c.Name))
		}

		seen[c.Name] = struct{}{}
	}

	return nil
}

func hasChoices(value any) error {
	opts, _ := value.(*FieldOptions)
	if opts == nil || len(opts.Choices) == 0 {
		return validation.NewError("validation_missing_choices", "select fields must have at least one choice")
	}

	return nil
}

func hasPrecision(value any) error {
	opts, _ := value.(*FieldOptions)
	if opts == nil || opts.Precision == nil {
		return validation.NewError("validation_missing_precision", "number fields must set a precision")
	}

	return nil
}
