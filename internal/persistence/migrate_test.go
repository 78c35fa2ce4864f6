package persistence_test

import (
	"testing"

	"github.com/paypost/go-paypost/internal/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceFindsMigrations(t *testing.T) {
	migrations, err := persistence.Source().FindMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 3)

	assert.Equal(t, "20240501120000-create-wallets.sql", migrations[0].Id)
	assert.Equal(t, "20240501120200-create-transactions.sql", migrations[2].Id)

	for _, m := range migrations {
		assert.NotEmpty(t, m.Up, m.Id)
		assert.NotEmpty(t, m.Down, m.Id)
	}
}
