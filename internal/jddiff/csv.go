package jddiff

import (
	"encoding/csv"
	"strings"
)

const utf8BOM = "\ufeff"

// EscapeField quotes a field containing a comma, semicolon, quote or newline,
// doubling the quotes inside.
func EscapeField(s string) string {
	if !strings.ContainsAny(s, ",;\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// CSV serializes the matrix. Rows are joined with \n, no trailing newline.
// A nil matrix serializes to an empty string.
func (m *Matrix) CSV() string {
	records := m.Records()
	if len(records) == 0 {
		return ""
	}

	lines := make([]string, 0, len(records))
	for _, record := range records {
		fields := make([]string, 0, len(record))
		for _, field := range record {
			fields = append(fields, EscapeField(field))
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return strings.Join(lines, "\n")
}

// ParseCSV reads serialized matrix text back into records. A leading byte order mark is ignored.
func ParseCSV(s string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(s, utf8BOM)))
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
