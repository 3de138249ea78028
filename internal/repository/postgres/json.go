package postgres

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonb marshals nested document rows (items, charges, parcels, stores)
// into JSONB columns and back.
type jsonb struct {
	v interface{}
}

func asJSON(v interface{}) jsonb {
	return jsonb{v: v}
}

func (j jsonb) Value() (driver.Value, error) {
	return json.Marshal(j.v)
}

func (j jsonb) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("unexpected JSONB column type %T", value)
	}
	return json.Unmarshal(bytes, j.v)
}

// statusPlaceholders renders an IN-list for status filters, starting at
// argument position start.
func statusPlaceholders(start, count int) string {
	out := ""
	for i := 0; i < count; i++ {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("$%d", start+i)
	}
	return out
}
