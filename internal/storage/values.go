package storage

import (
	"fmt"

	"github.com/shopspring/decimal"
)

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 500 {
		return 100
	}
	return limit
}

func parseMoney(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse numeric %q: %w", raw, err)
	}
	return d, nil
}
