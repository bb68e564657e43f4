package output

import (
	"strconv"

	"github.com/rpgo/finplan/pkg/money"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats an amount with 2 decimals. Plans carry no currency
// unit, so none is printed.
func FormatCurrency(amount decimal.Decimal) string { return money.Format(amount) }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
