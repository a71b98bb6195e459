package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList stores an ordered list of strings as a JSON text column.
// Variant image URLs use it so the same model works on Postgres and the
// sqlite test harness.
type StringList []string

// Value serializes the list for storage. An empty list stores as "[]".
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	encoded, err := json.Marshal([]string(l))
	if err != nil {
		return nil, fmt.Errorf("encoding string list: %w", err)
	}
	return string(encoded), nil
}

// Scan restores the list from its stored JSON form.
func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = StringList{}
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported string list source %T", src)
	}

	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}

	var decoded []string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("decoding string list: %w", err)
	}
	*l = StringList(decoded)
	return nil
}
