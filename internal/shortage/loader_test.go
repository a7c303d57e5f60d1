package shortage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makimaki1006/shift-suite-sub009/pkg/logger"
)

func writeScenarioFile(t *testing.T, dir, scenario, name, content string) {
	t.Helper()
	scenarioDir := filepath.Join(dir, scenario)
	require.NoError(t, os.MkdirAll(scenarioDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(scenarioDir, name), []byte(content), 0o644))
}

func TestLoader_LoadScenario(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "june", operatingFileName,
		"timestamp,staff_id,role,employment_type\n"+
			"2025-06-01T08:00:00Z,s1,nurse,full_time\n"+
			"2025-06-01 08:30:00,s2,nurse,part_time\n"+
			"2025-06-01T09:00:00Z,s1,care,full_time\n")
	writeScenarioFile(t, dir, "june", needFileName,
		"role,need\n"+
			"nurse,10\n"+
			"nurse,5\n"+
			"care,8\n")

	l := NewLoader(dir, logger.New("error"))
	rows, needByRole, skipped, err := l.LoadScenario("june")
	require.NoError(t, err)

	assert.Len(t, rows, 3)
	assert.Equal(t, "s2", rows[1].StaffID)
	assert.Zero(t, skipped)

	// Need values for the same role sum across records.
	assert.InDelta(t, 15.0, needByRole["nurse"], 1e-9)
	assert.InDelta(t, 8.0, needByRole["care"], 1e-9)
}

func TestLoader_MissingScenarioIsAnError(t *testing.T) {
	l := NewLoader(t.TempDir(), logger.New("error"))
	_, _, _, err := l.LoadScenario("nonexistent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestLoader_SingleMissingFileYieldsEmptySide(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "partial", needFileName, "role,need\nnurse,10\n")

	l := NewLoader(dir, logger.New("error"))
	rows, needByRole, skipped, err := l.LoadScenario("partial")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Zero(t, skipped)
	assert.InDelta(t, 10.0, needByRole["nurse"], 1e-9)
}

// An operating file that exists but cannot be read must fail the load, never
// pass as "file absent": empty rows with err == nil would let the calculator
// report every role as all-shortage against a fully loaded need side.
func TestLoader_UnreadableOperatingFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "broken", needFileName, "role,need\nnurse,10\n")

	// A self-referencing symlink makes os.Stat fail with an error that is
	// not IsNotExist.
	scenarioDir := filepath.Join(dir, "broken")
	link := filepath.Join(scenarioDir, operatingFileName)
	require.NoError(t, os.Symlink(link, link))

	l := NewLoader(dir, logger.New("error"))
	_, _, _, err := l.LoadScenario("broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoData)
}

func TestLoader_UnreadableNeedFileIsAnError(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "broken", operatingFileName,
		"timestamp,staff_id,role,employment_type\n"+
			"2025-06-01T08:00:00Z,s1,nurse,full_time\n")

	scenarioDir := filepath.Join(dir, "broken")
	link := filepath.Join(scenarioDir, needFileName)
	require.NoError(t, os.Symlink(link, link))

	l := NewLoader(dir, logger.New("error"))
	_, _, _, err := l.LoadScenario("broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoData)
}

func TestLoader_MalformedRecordsSkippedAndCounted(t *testing.T) {
	dir := t.TempDir()
	writeScenarioFile(t, dir, "messy", operatingFileName,
		"timestamp,staff_id,role,employment_type\n"+
			"not-a-timestamp,s1,nurse,full_time\n"+
			"2025-06-01T08:00:00Z,s1,nurse,full_time\n"+
			"short,row\n")
	writeScenarioFile(t, dir, "messy", needFileName,
		"role,need\n"+
			"nurse,abc\n"+
			"nurse,12\n"+
			",5\n")

	l := NewLoader(dir, logger.New("error"))
	rows, needByRole, skipped, err := l.LoadScenario("messy")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.InDelta(t, 12.0, needByRole["nurse"], 1e-9)

	// Two bad operating records plus two bad need records.
	assert.Equal(t, 4, skipped)
}
