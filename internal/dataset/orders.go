package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/contracts"
)

var orderColumns = []string{
	"order_id",
	"order_date",
	"delayed",
	"shipping_method",
	"shipping_distance_km",
	"order_quantity",
	"supplier_reliability_score",
}

// OrderSource yields the full order set. Implementations are expected to
// read fresh data on every call.
type OrderSource interface {
	Orders(ctx context.Context) ([]contracts.Order, error)
}

// CSVOrders reads the fulfillment dataset from a CSV file each time Orders
// is called.
type CSVOrders struct {
	Path string
}

func NewCSVOrders(path string) *CSVOrders {
	return &CSVOrders{Path: path}
}

func (c *CSVOrders) Orders(ctx context.Context) ([]contracts.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("open orders file %s: %w", c.Path, err)
	}
	defer file.Close()

	return ReadOrders(file)
}

// ReadOrders parses orders from CSV. Extra columns are ignored; an empty
// body yields an empty slice.
func ReadOrders(r io.Reader) ([]contracts.Order, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read orders CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("orders CSV has no header")
	}

	cols, err := indexColumns(records[0], orderColumns...)
	if err != nil {
		return nil, fmt.Errorf("orders CSV: %w", err)
	}

	orders := make([]contracts.Order, 0, len(records)-1)
	for i, record := range records[1:] {
		order, err := parseOrder(cols, record)
		if err != nil {
			return nil, fmt.Errorf("orders CSV row %d: %w", i+2, err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func parseOrder(cols columns, record []string) (contracts.Order, error) {
	id, err := parseInt(cols.get(record, "order_id"), "order_id")
	if err != nil {
		return contracts.Order{}, err
	}
	orderDate, err := parseDate(cols.get(record, "order_date"))
	if err != nil {
		return contracts.Order{}, err
	}
	delayed, err := parseFlag(cols.get(record, "delayed"), "delayed")
	if err != nil {
		return contracts.Order{}, err
	}
	distance, err := parseFloat(cols.get(record, "shipping_distance_km"), "shipping_distance_km")
	if err != nil {
		return contracts.Order{}, err
	}
	quantity, err := parseInt(cols.get(record, "order_quantity"), "order_quantity")
	if err != nil {
		return contracts.Order{}, err
	}
	reliability, err := parseFloat(cols.get(record, "supplier_reliability_score"), "supplier_reliability_score")
	if err != nil {
		return contracts.Order{}, err
	}

	return contracts.Order{
		ID:                  id,
		OrderDate:           orderDate,
		Delayed:             delayed,
		ShippingMethod:      contracts.ShippingMethod(cols.get(record, "shipping_method")),
		ShippingDistanceKM:  distance,
		OrderQuantity:       int(quantity),
		SupplierReliability: reliability,
	}, nil
}
