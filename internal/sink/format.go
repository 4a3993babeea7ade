package sink

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/contracts"
)

const timestampLayout = "2006-01-02 15:04:05"

var printer = message.NewPrinter(language.English)

// Money renders an amount as "$12,345.67".
func Money(amount decimal.Decimal) string {
	return printer.Sprintf("$%.2f", amount.Round(2).InexactFloat64())
}

// Percent renders a fraction as a percentage with the given precision.
func Percent(fraction float64, precision int) string {
	return printer.Sprintf(fmt.Sprintf("%%.%df%%%%", precision), fraction*100)
}

// FormatLine renders one exception-log entry, newline terminated.
func FormatLine(a contracts.Assessment) string {
	return printer.Sprintf("TIME: %s | ID: %s | NODE: %s | RISK: %s | EXPOSURE: %s | STATUS: %s\n",
		a.Timestamp.Format(timestampLayout),
		a.OrderID,
		strings.ToUpper(a.Destination),
		Percent(a.FinalRisk, 2),
		Money(a.Exposure),
		a.Tier,
	)
}
