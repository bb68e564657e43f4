package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rpgo/finplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &domain.PlanReport{CurrentYear: 2025}, "console"))
	assert.True(t, strings.HasPrefix(buf.String(), "FINANCIAL PLAN SUMMARY"))

	err := Write(&buf, &domain.PlanReport{}, "pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	assert.Contains(t, err.Error(), "console-verbose")
}

func TestWrite_FormatterError(t *testing.T) {
	boom := errors.New("boom")
	old := builtInFormatters
	builtInFormatters = append([]Formatter{FormatterFunc{ID: "broken", F: func(*domain.PlanReport) ([]byte, error) { return nil, boom }}}, old...)
	t.Cleanup(func() { builtInFormatters = old })

	err := Write(&bytes.Buffer{}, &domain.PlanReport{}, "broken")
	assert.True(t, errors.Is(err, boom))
}

func TestGenerateReport(t *testing.T) {
	nowFunc = func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC) }
	t.Cleanup(func() { nowFunc = time.Now })

	dir := t.TempDir()
	report := buildTestReport(t)

	files, err := GenerateReport(report, "json", dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "finplan_json_20250304_050607.json"), files[0])
	_, err = os.Stat(files[0])
	assert.NoError(t, err)

	files, err = GenerateReport(report, "all", dir)
	require.NoError(t, err)
	assert.Len(t, files, 5)
	for _, f := range files {
		assert.Equal(t, ".csv", filepath.Ext(f))
	}

	_, err = GenerateReport(report, "docx", dir)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, "csv", ExtensionFor("loan-csv"))
	assert.Equal(t, "csv", ExtensionFor("amortization"))
	assert.Equal(t, "json", ExtensionFor("json"))
	assert.Equal(t, "yaml", ExtensionFor("yml"))
	assert.Equal(t, "txt", ExtensionFor("console"))
}
