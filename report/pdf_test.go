package report_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/tasktimer/internal/testutil"
	"github.com/ayoisaiah/tasktimer/report"
)

func TestWritePDF(t *testing.T) {
	summary := report.Build(sample(), time.UTC)
	path := filepath.Join(t.TempDir(), "report.pdf")

	err := summary.WritePDF(path, testutil.Epoch, testutil.Epoch.Add(72*time.Hour))
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(b) > 4)
	assert.Equal(t, "%PDF", string(b[:4]))
}
