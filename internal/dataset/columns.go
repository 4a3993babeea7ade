package dataset

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrMissingArtifact marks a required input file that does not exist.
var ErrMissingArtifact = errors.New("required artifact missing")

// RequireArtifacts fails with ErrMissingArtifact for the first path that
// is absent or is a directory.
func RequireArtifacts(paths ...string) error {
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("%w: %s", ErrMissingArtifact, p)
			}
			return fmt.Errorf("stat %s: %w", p, err)
		}
		if info.IsDir() {
			return fmt.Errorf("%w: %s is a directory", ErrMissingArtifact, p)
		}
	}
	return nil
}

type columns map[string]int

func indexColumns(header []string, required ...string) (columns, error) {
	cols := make(columns, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if name == "" {
			continue
		}
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}

	var missing []string
	for _, r := range required {
		if _, ok := cols[r]; !ok {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("header missing columns %v, got %v", missing, header)
	}
	return cols, nil
}

// get tolerates ragged rows; spreadsheet readers drop trailing empty cells.
func (c columns) get(record []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseFloat(raw, field string) (float64, error) {
	clean := strings.NewReplacer(",", "", "$", "").Replace(strings.TrimSpace(raw))
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", field, raw, err)
	}
	return v, nil
}

func parseInt(raw, field string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err == nil {
		return v, nil
	}
	// Spreadsheet exports often write integral ids as "1042.0".
	f, ferr := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if ferr != nil || f != float64(int64(f)) {
		return 0, fmt.Errorf("invalid %s %q: %w", field, raw, err)
	}
	return int64(f), nil
}

func parseFlag(raw, field string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "1.0", "true", "yes":
		return true, nil
	case "0", "0.0", "false", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s %q", field, raw)
	}
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
	"1/2/2006",
}

func parseDate(raw string) (time.Time, error) {
	v := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid order_date %q", raw)
}
