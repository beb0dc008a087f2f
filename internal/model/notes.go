package model

import "database/sql"

// Notes normalizes a raw notes value: nil and empty both become "".
func Notes(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// NotesFromColumn applies the same rule to a nullable column.
func NotesFromColumn(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	return v.String
}
