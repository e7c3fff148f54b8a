package cart

import (
	"github.com/google/uuid"
)

// Line is one priced entry in a session cart. Prices are resolved from the
// catalog when the line is added; the snapshot is advisory, final pricing
// happens at placement.
type Line struct {
	ID              uuid.UUID `json:"id"`
	MenuID          uuid.UUID `json:"menuId"`
	Name            string    `json:"name"`
	UnitPrice       int       `json:"unitPrice"`
	Quantity        int       `json:"quantity"`
	Options         []string  `json:"options,omitempty"`
	OptionSurcharge int       `json:"optionSurcharge"`
	TotalPrice      int       `json:"totalPrice"`
}

// Cart is the session-scoped cart blob stored in Redis.
type Cart struct {
	Lines []Line `json:"lines"`
	Total int    `json:"total"`
}

func (c *Cart) recalc() {
	total := 0
	for i := range c.Lines {
		line := &c.Lines[i]
		line.TotalPrice = (line.UnitPrice + line.OptionSurcharge) * line.Quantity
		total += line.TotalPrice
	}
	c.Total = total
}

// sameOptions compares option sets ignoring order.
func sameOptions(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, key := range a {
		seen[key]++
	}
	for _, key := range b {
		seen[key]--
		if seen[key] < 0 {
			return false
		}
	}
	return true
}
