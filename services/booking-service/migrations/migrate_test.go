package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamesAreOrdered(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_catalog.sql", "0002_holds_appointments.sql", "0003_outbox.sql"}, names)

	for _, n := range names {
		body, err := migrationFiles.ReadFile(n)
		require.NoError(t, err)
		assert.NotEmpty(t, body, n)
	}
}
