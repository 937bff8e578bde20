package types

import (
	"bytes"
	"encoding/json"
	"time"
)

// NullableTime tracks whether a timestamp field was present in JSON and whether it was null.
type NullableTime struct {
	Set   bool
	Value *time.Time
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableTime) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	if bytes.Equal(trimmed, []byte("null")) {
		n.Set = true
		n.Value = nil
		return nil
	}

	var parsed time.Time
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return err
	}
	n.Set = true
	n.Value = &parsed
	return nil
}

// IsNull reports an explicit JSON null.
func (n NullableTime) IsNull() bool {
	return n.Set && n.Value == nil
}
