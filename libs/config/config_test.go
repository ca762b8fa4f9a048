package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration(t *testing.T) {
	t.Setenv("HOLD_TTL", "")
	d, err := Duration("HOLD_TTL", 5*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, d)

	t.Setenv("HOLD_TTL", "90s")
	d, err = Duration("HOLD_TTL", 0)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)

	t.Setenv("HOLD_TTL", "120")
	d, err = Duration("HOLD_TTL", 0)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, d)

	t.Setenv("HOLD_TTL", "soon")
	_, err = Duration("HOLD_TTL", 0)
	assert.Error(t, err)
}

func TestIntAndPort(t *testing.T) {
	t.Setenv("SWEEP_BATCH", "25")
	n, err := Int("SWEEP_BATCH", 100)
	require.NoError(t, err)
	assert.Equal(t, 25, n)

	t.Setenv("PORT", "99999")
	_, err = Port("PORT", "8083")
	assert.Error(t, err)
}

func TestCSVAndBool(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " http://a.test , ,http://b.test")
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, CSV("CORS_ORIGINS", ""))

	t.Setenv("MIGRATE", "yes")
	assert.True(t, Bool("MIGRATE", false))
	t.Setenv("MIGRATE", "")
	assert.True(t, Bool("MIGRATE", true))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("SLOTHOLD_TEST_VALUE=from-file\n"), 0o600))

	t.Setenv("SLOTHOLD_TEST_VALUE", "")
	os.Unsetenv("SLOTHOLD_TEST_VALUE")
	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("SLOTHOLD_TEST_VALUE"))
}
