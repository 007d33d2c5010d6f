package willdoc

import (
	"strconv"
	"strings"
)

// Ordinal formats a day number as "1st", "22nd", ... The teens (11-13 mod
// 100) always take "th" regardless of their last digit.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// FormatINR renders an amount as a rupee figure with Indian digit grouping
// (last three digits, then groups of two): 1234567 -> ₹12,34,567.00. Number
// formatting is fixed-locale; the localized document path does not change it.
func FormatINR(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	whole, cents, _ := strings.Cut(s, ".")
	return "₹" + groupIndian(whole) + "." + cents
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(append(groups, tail), ",")
}
