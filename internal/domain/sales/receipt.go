package sales

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ReceiptPrefix is the constant prefix of every receipt number
const ReceiptPrefix = "JL"

// receiptDateLayout is the date segment layout of a receipt number
const receiptDateLayout = "20060102"

var receiptPattern = regexp.MustCompile(`^JL-(\d{8})-(\d{3,})$`)

// FormatReceiptNumber formats a receipt number as JL-YYYYMMDD-NNN.
// Ordinals are 1-based and zero-padded to three digits; past 999 the
// width simply grows, it is never truncated.
func FormatReceiptNumber(date time.Time, ordinal int) string {
	return fmt.Sprintf("%s%03d", ReceiptDatePrefix(date), ordinal)
}

// ReceiptDatePrefix returns the "JL-YYYYMMDD-" prefix shared by all
// receipts issued on the given date
func ReceiptDatePrefix(date time.Time) string {
	return fmt.Sprintf("%s-%s-", ReceiptPrefix, date.Format(receiptDateLayout))
}

// ParseReceiptNumber splits a receipt number into its date and ordinal.
// Returns false for strings that are not well-formed receipt numbers.
func ParseReceiptNumber(number string) (date time.Time, ordinal int, ok bool) {
	m := receiptPattern.FindStringSubmatch(number)
	if m == nil {
		return time.Time{}, 0, false
	}
	d, err := time.Parse(receiptDateLayout, m[1])
	if err != nil {
		return time.Time{}, 0, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n < 1 {
		return time.Time{}, 0, false
	}
	return d, n, true
}
