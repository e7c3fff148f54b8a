package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// OrderLine is the immutable snapshot of one resolved order line: menu data
// and option surcharges as they were at reservation time.
type OrderLine struct {
	MenuID          uuid.UUID `json:"menuId"`
	Name            string    `json:"name"`
	UnitPrice       int       `json:"unitPrice"`
	Quantity        int       `json:"quantity"`
	Options         []string  `json:"options,omitempty"`
	OptionSurcharge int       `json:"optionSurcharge"`
	LineTotal       int       `json:"lineTotal"`
}

// OrderLines is a slice marshaled as JSONB.
type OrderLines []OrderLine

// Value serializes the lines to JSON.
func (o OrderLines) Value() (driver.Value, error) {
	if o == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(o)
}

// Scan decodes JSONB into the line slice.
func (o *OrderLines) Scan(value interface{}) error {
	if value == nil {
		*o = nil
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported order lines source %T", value)
	}
	var decoded OrderLines
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*o = decoded
	return nil
}

// Total sums the line totals; callers use it to cross-check a persisted
// order's total_amount against its snapshot.
func (o OrderLines) Total() int {
	total := 0
	for _, line := range o {
		total += line.LineTotal
	}
	return total
}
