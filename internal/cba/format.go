package cba

import "strconv"

// FormatDollars renders a monetary amount as "$1,234,567".
func FormatDollars(amount int64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, d)
	}
	if negative {
		return "-$" + string(out)
	}
	return "$" + string(out)
}
