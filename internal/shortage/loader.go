package shortage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/makimaki1006/shift-suite-sub009/internal/models"
	"github.com/makimaki1006/shift-suite-sub009/pkg/logger"
)

// Scenario file names inside a scenario directory. The upstream store keeps
// these as columnar files; this loader only needs the tabular columns
// timestamp, staff id, role, employment type and role, need.
const (
	operatingFileName = "operating_rows.csv"
	needFileName      = "need_by_role.csv"
)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// Loader reads scenario data from a directory of CSV files.
type Loader struct {
	dir    string
	logger logger.Logger
}

func NewLoader(dir string, log logger.Logger) *Loader {
	return &Loader{dir: dir, logger: log}
}

// LoadScenario reads the operating rows and per-role need for one scenario.
// A scenario directory with neither file is an error, so "no data" can never
// be mistaken for an empty-but-valid scenario. A single missing file yields
// an empty slice or map for that side; any other stat failure (permissions,
// broken symlink) is an error for the same reason. The int return counts
// records skipped as unparseable, so the caller can surface them.
func (l *Loader) LoadScenario(scenario string) ([]models.OperatingRow, map[string]float64, int, error) {
	scenarioDir := filepath.Join(l.dir, scenario)

	operatingPath := filepath.Join(scenarioDir, operatingFileName)
	needPath := filepath.Join(scenarioDir, needFileName)

	_, operatingErr := os.Stat(operatingPath)
	_, needErr := os.Stat(needPath)
	if os.IsNotExist(operatingErr) && os.IsNotExist(needErr) {
		return nil, nil, 0, fmt.Errorf("scenario %q has no data under %s: %w", scenario, scenarioDir, ErrNoData)
	}
	if operatingErr != nil && !os.IsNotExist(operatingErr) {
		return nil, nil, 0, fmt.Errorf("stat operating rows: %w", operatingErr)
	}
	if needErr != nil && !os.IsNotExist(needErr) {
		return nil, nil, 0, fmt.Errorf("stat need data: %w", needErr)
	}

	skipped := 0

	rows := []models.OperatingRow{}
	if operatingErr == nil {
		loaded, n, err := l.loadOperatingRows(operatingPath)
		if err != nil {
			return nil, nil, 0, err
		}
		rows = loaded
		skipped += n
	}

	needByRole := map[string]float64{}
	if needErr == nil {
		loaded, n, err := l.loadNeedByRole(needPath)
		if err != nil {
			return nil, nil, 0, err
		}
		needByRole = loaded
		skipped += n
	}

	return rows, needByRole, skipped, nil
}

func (l *Loader) loadOperatingRows(path string) ([]models.OperatingRow, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open operating rows: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	// Skip header.
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("read operating rows header: %w", err)
	}

	rows := []models.OperatingRow{}
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		if len(record) < 4 {
			skipped++
			continue
		}
		ts, ok := parseTimestamp(record[0])
		if !ok {
			skipped++
			continue
		}
		rows = append(rows, models.OperatingRow{
			Timestamp:      ts,
			StaffID:        record[1],
			Role:           record[2],
			EmploymentType: record[3],
		})
	}
	if skipped > 0 {
		l.logger.Warn("unparseable operating rows skipped", "file", path, "count", skipped)
	}
	return rows, skipped, nil
}

func (l *Loader) loadNeedByRole(path string) (map[string]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open need data: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return map[string]float64{}, 0, nil
		}
		return nil, 0, fmt.Errorf("read need header: %w", err)
	}

	needByRole := map[string]float64{}
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil || len(record) < 2 || record[0] == "" {
			skipped++
			continue
		}
		need, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			skipped++
			continue
		}
		// Need values for the same role across slots sum up.
		needByRole[record[0]] += need
	}
	if skipped > 0 {
		l.logger.Warn("unparseable need records skipped", "file", path, "count", skipped)
	}
	return needByRole, skipped, nil
}

func parseTimestamp(raw string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
