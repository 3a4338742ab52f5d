package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/buger/jsonparser"

	"github.com/carelink/carelink/internal/domain/roleconfig"
	"github.com/carelink/carelink/pkg/flatten"
)

// roleDataKeys are the payload sections that can substitute for a profile,
// keyed by the owning role.
var roleDataKeys = []string{"health_data", "practice_data", "family_health_data", "session_data"}

// Validate checks the minimal payload shape. It must pass before any
// serialization is attempted; serializing an invalid payload is prevented,
// not handled.
func Validate(payload []byte) error {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '{' || !json.Valid(trimmed) {
		return ErrInvalidExportData
	}

	if _, dt, _, _ := jsonparser.Get(payload, "export_info"); dt != jsonparser.Object {
		return ErrMissingMetadata
	}

	if hasContent(payload, "profile") {
		return nil
	}
	for _, key := range roleDataKeys {
		if hasContent(payload, key) {
			return nil
		}
	}
	return ErrMissingContent
}

// hasContent reports whether key holds a real value. A JSON null counts
// as absent: a null profile has nothing to serialize.
func hasContent(payload []byte, key string) bool {
	_, dt, _, _ := jsonparser.Get(payload, key)
	return dt != jsonparser.NotExist && dt != jsonparser.Null
}

// SerializeJSON pretty-prints the payload with two-space indentation. The
// output is byte-for-byte deterministic: it re-indents the raw bytes, so
// the backend's key order is preserved rather than re-sorted.
func SerializeJSON(payload []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidExportData, err)
	}
	return buf.Bytes(), nil
}

// SerializeCSV renders the payload as sectioned CSV: an Export Information
// header, the flattened profile, then one role-specific data section, each
// followed by a blank line. Every flattened value is wrapped in double
// quotes without escaping embedded quotes; consumers rely on this exact
// output shape.
func SerializeCSV(payload []byte) ([]byte, error) {
	info, dt, _, _ := jsonparser.Get(payload, "export_info")
	if dt != jsonparser.Object {
		return nil, ErrMissingMetadata
	}

	role, _ := jsonparser.GetString(info, "role")
	exportedAt, err := jsonparser.GetString(info, "exported_at")
	if err != nil {
		exportedAt = time.Now().UTC().Format(time.RFC3339)
	}
	subject := subjectID(info)

	var b strings.Builder
	b.WriteString("Export Information\n")
	b.WriteString("Role," + role + "\n")
	b.WriteString("Exported At," + exportedAt + "\n")
	b.WriteString("Subject ID," + subject + "\n\n")

	if profile, dt, _, _ := jsonparser.Get(payload, "profile"); dt == jsonparser.Object {
		if err := writeFlattenedSection(&b, "Profile Data", profile); err != nil {
			return nil, err
		}
	}

	switch roleconfig.Role(role) {
	case roleconfig.RolePatient:
		if data, dt, _, _ := jsonparser.Get(payload, "health_data"); dt == jsonparser.Object {
			if err := writeFlattenedSection(&b, "Health Data", data); err != nil {
				return nil, err
			}
		}
		if logs, dt, _, _ := jsonparser.Get(payload, "food_logs"); dt == jsonparser.Array {
			writeFoodLogs(&b, logs)
		}
	case roleconfig.RoleProvider:
		if data, dt, _, _ := jsonparser.Get(payload, "practice_data"); dt == jsonparser.Object {
			if err := writeFlattenedSection(&b, "Practice Data", data); err != nil {
				return nil, err
			}
		}
	case roleconfig.RoleFamily:
		if data, dt, _, _ := jsonparser.Get(payload, "family_health_data"); dt == jsonparser.Object {
			if err := writeFlattenedSection(&b, "Family Health Data", data); err != nil {
				return nil, err
			}
		}
		if data, dt, _, _ := jsonparser.Get(payload, "meal_planning"); dt == jsonparser.Object {
			if err := writeFlattenedSection(&b, "Meal Planning", data); err != nil {
				return nil, err
			}
		}
	case roleconfig.RoleGuest:
		if data, dt, _, _ := jsonparser.Get(payload, "session_data"); dt == jsonparser.Object {
			if err := writeFlattenedSection(&b, "Session Data", data); err != nil {
				return nil, err
			}
		}
	}

	return []byte(b.String()), nil
}

// subjectID resolves the identifying field of an export_info block:
// user_id, then family_id, then session_id, then the literal N/A.
func subjectID(info []byte) string {
	for _, key := range []string{"user_id", "family_id", "session_id"} {
		if v, err := jsonparser.GetString(info, key); err == nil && v != "" {
			return v
		}
	}
	return "N/A"
}

func writeFlattenedSection(b *strings.Builder, title string, data []byte) error {
	fields, err := flatten.Object(data)
	if err != nil {
		return fmt.Errorf("flatten %s: %w", strings.ToLower(title), err)
	}
	b.WriteString(title + "\n")
	b.WriteString("Field,Value\n")
	for _, f := range fields {
		b.WriteString(`"` + f.Key + `","` + f.Value + `"` + "\n")
	}
	b.WriteString("\n")
	return nil
}

// writeFoodLogs expands the food log array into one row per food item,
// walking each log's date, then its meals by type, then the foods.
func writeFoodLogs(b *strings.Builder, logs []byte) {
	b.WriteString("Food Logs\n")
	b.WriteString("Date,Meal,Food,Calories,Protein\n")
	jsonparser.ArrayEach(logs, func(log []byte, dt jsonparser.ValueType, _ int, _ error) {
		if dt != jsonparser.Object {
			return
		}
		date, _ := jsonparser.GetString(log, "date")
		jsonparser.ObjectEach(log, func(mealType, foods []byte, dt jsonparser.ValueType, _ int) error {
			if dt != jsonparser.Array {
				return nil
			}
			jsonparser.ArrayEach(foods, func(item []byte, dt jsonparser.ValueType, _ int, _ error) {
				if dt != jsonparser.Object {
					return
				}
				food, _ := jsonparser.GetString(item, "food")
				row := []string{date, string(mealType), food, numberText(item, "calories"), numberText(item, "protein")}
				b.WriteString(strings.Join(row, ",") + "\n")
			})
			return nil
		}, "meals")
	})
	b.WriteString("\n")
}

// numberText returns the literal text of a numeric field, or the string
// value as-is, or empty when absent.
func numberText(obj []byte, key string) string {
	value, dt, _, _ := jsonparser.Get(obj, key)
	switch dt {
	case jsonparser.Number:
		return string(value)
	case jsonparser.String:
		s, err := jsonparser.ParseString(value)
		if err != nil {
			return ""
		}
		return s
	default:
		return ""
	}
}

// BuildFilename names an artifact {role}-data-{subject}-{date}-{time} using
// the clock at call time. The time component carries no colons or dots.
func BuildFilename(role roleconfig.Role, subjectID string) string {
	return fmt.Sprintf("%s-data-%s-%s", role, subjectID, time.Now().Format("2006-01-02-15-04-05"))
}
