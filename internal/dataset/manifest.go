package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/contracts"
)

var manifestColumns = []string{"order_id", "destination", "cargo_value"}

// LoadManifest reads shipment rows from an .xlsx workbook (first sheet) or
// a .csv file, chosen by extension.
func LoadManifest(path string) ([]contracts.ManifestEntry, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSVRows(path)
	default:
		rows, err = readWorkbookRows(path)
	}
	if err != nil {
		return nil, err
	}
	return parseManifest(rows)
}

func readWorkbookRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("manifest workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read manifest sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

func readCSVRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read manifest CSV: %w", err)
	}
	return rows, nil
}

func parseManifest(rows [][]string) ([]contracts.ManifestEntry, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("manifest has no header")
	}
	cols, err := indexColumns(rows[0], manifestColumns...)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}

	entries := make([]contracts.ManifestEntry, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		entry, err := parseManifestRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("manifest row %d: %w", i+2, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseManifestRow(cols columns, row []string) (contracts.ManifestEntry, error) {
	orderID := cols.get(row, "order_id")
	if orderID == "" {
		return contracts.ManifestEntry{}, fmt.Errorf("order_id is required")
	}
	cargo, err := parseFloat(cols.get(row, "cargo_value"), "cargo_value")
	if err != nil {
		return contracts.ManifestEntry{}, err
	}
	if cargo < 0 {
		return contracts.ManifestEntry{}, fmt.Errorf("cargo_value %v is negative", cargo)
	}
	features, err := parseFeatures(cols, row)
	if err != nil {
		return contracts.ManifestEntry{}, err
	}

	return contracts.ManifestEntry{
		OrderID:     orderID,
		Destination: cols.get(row, "destination"),
		CargoValue:  decimal.NewFromFloat(cargo),
		Features:    features,
	}, nil
}

// parseFeatures starts from the default template and overlays any feature
// columns present on the row.
func parseFeatures(cols columns, row []string) (contracts.Features, error) {
	f := contracts.DefaultFeatures()

	numeric := []struct {
		name string
		dst  *float64
	}{
		{"supplier_reliability_score", &f.SupplierReliability},
		{"warehouse_inventory_level", &f.WarehouseInventoryLevel},
		{"order_quantity", &f.OrderQuantity},
		{"shipping_distance_km", &f.ShippingDistanceKM},
		{"processing_time_hours", &f.ProcessingTimeHours},
	}
	for _, n := range numeric {
		raw := cols.get(row, n.name)
		if raw == "" {
			continue
		}
		v, err := parseFloat(raw, n.name)
		if err != nil {
			return contracts.Features{}, err
		}
		*n.dst = v
	}

	if v := cols.get(row, "shipping_method"); v != "" {
		f.ShippingMethod = contracts.ShippingMethod(v)
	}
	if v := cols.get(row, "weather_condition"); v != "" {
		f.WeatherCondition = v
	}
	if v := cols.get(row, "order_priority"); v != "" {
		f.OrderPriority = v
	}
	return f, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
