package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	unitGram     = "גרם"
	unitKilogram = "ק\"ג"
)

// PortionTotal renders the derived display total for a plain-quantity item,
// e.g. multiplier 3, unit "יח'", quantity 5 → "15 יח'". Gram totals convert
// to kilograms once they reach 1000. Returns false when the item defines no
// portion multiplier.
func (it Item) PortionTotal(quantity int32) (string, bool) {
	if it.PortionMultiplier <= 0 || quantity <= 0 {
		return "", false
	}
	total := int64(it.PortionMultiplier) * int64(quantity)
	unit := it.PortionUnit
	if unit == unitGram && total >= 1000 {
		return fmt.Sprintf("%s %s", formatKilograms(total), unitKilogram), true
	}
	return fmt.Sprintf("%d %s", total, unit), true
}

// formatKilograms renders grams as kilograms with up to three decimal
// places, trailing zeros trimmed (1500 → "1.5", 2000 → "2").
func formatKilograms(grams int64) string {
	s := strconv.FormatFloat(float64(grams)/1000, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
