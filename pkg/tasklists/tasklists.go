// Package tasklists holds the one table this service knows how to provision: the
// "Task Lists" table used by the team to track assignments.
package tasklists

import (
	"github.com/navikt/airtable-tasklists/pkg/airtable"
)

const (
	TableName = "Task Lists"

	FieldTaskName     = "Task Name"
	FieldAssignedTo   = "Assigned To"
	FieldStatus       = "Status"
	FieldPriority     = "Priority"
	FieldDueDate      = "Due Date"
	FieldDescription  = "Description"
	FieldProgress     = "Progress %"
	FieldDateCreated  = "Date Created"
	FieldLastModified = "Last Modified"
	FieldTimeEstimate = "Time Estimate (Hours)"
	FieldTags         = "Tags"
	FieldNotes        = "Notes"
)

// Table returns the Task Lists table definition. Every caller gets its own copy,
// built from the same definition.
func Table() airtable.CreateTableRequest {
	return airtable.CreateTableRequest{
		Name: TableName,
		Fields: []airtable.Field{
			{
				Name: FieldTaskName,
				Type: airtable.FieldTypeSingleLineText,
			},
			selectField(FieldAssignedTo, airtable.FieldTypeSingleSelect,
				choice("Vanessa", "blueLight2"),
				choice("Blake", "cyanLight2"),
				choice("Beau", "tealLight2"),
				choice("Chris", "greenLight2"),
				choice("Liam", "yellowLight2"),
				choice("Tevon", "orangeLight2"),
			),
			selectField(FieldStatus, airtable.FieldTypeSingleSelect,
				choice("Not Started", "grayLight2"),
				choice("In Progress", "yellowLight2"),
				choice("Review", "orangeLight2"),
				choice("Completed", "greenLight2"),
				choice("On Hold", "redLight2"),
			),
			selectField(FieldPriority, airtable.FieldTypeSingleSelect,
				choice("Low", "grayLight2"),
				choice("Medium", "yellowLight2"),
				choice("High", "orangeLight2"),
				choice("Urgent", "redLight2"),
			),
			timeField(FieldDueDate, airtable.FieldTypeDate, false),
			{
				Name: FieldDescription,
				Type: airtable.FieldTypeMultilineText,
			},
			numberField(FieldProgress, 0),
			timeField(FieldDateCreated, airtable.FieldTypeCreatedTime, true),
			timeField(FieldLastModified, airtable.FieldTypeLastModifiedTime, true),
			numberField(FieldTimeEstimate, 1),
			selectField(FieldTags, airtable.FieldTypeMultipleSelects,
				choice("Development", "blueLight2"),
				choice("Marketing", "greenLight2"),
				choice("Design", "purpleLight2"),
				choice("Client Work", "orangeLight2"),
				choice("Admin", "grayLight2"),
				choice("Research", "cyanLight2"),
				choice("Meeting", "yellowLight2"),
			),
			{
				Name: FieldNotes,
				Type: airtable.FieldTypeMultilineText,
			},
		},
	}
}

func choice(name, color string) airtable.Choice {
	return airtable.Choice{
		Name:  name,
		Color: color,
	}
}

func selectField(name string, typ airtable.FieldType, choices ...airtable.Choice) airtable.Field {
	return airtable.Field{
		Name: name,
		Type: typ,
		Options: &airtable.FieldOptions{
			Choices: choices,
		},
	}
}

func numberField(name string, precision int) airtable.Field {
	return airtable.Field{
		Name: name,
		Type: airtable.FieldTypeNumber,
		Options: &airtable.FieldOptions{
			Precision: &precision,
		},
	}
}

func timeField(name string, typ airtable.FieldType, includeTime bool) airtable.Field {
	return airtable.Field{
		Name: name,
		Type: typ,
		Options: &airtable.FieldOptions{
			DateFormat: &airtable.DateFormat{
				Name: airtable.DateFormatLocal,
			},
			IncludeTime: includeTime,
		},
	}
}
