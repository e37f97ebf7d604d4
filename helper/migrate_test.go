package helper

import (
	"net/url"
	"stayledger/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Write.Username = "ledger"
	cfg.DB.Postgres.Write.Password = "p@ss:word"
	cfg.DB.Postgres.Write.Host = "db"
	cfg.DB.Postgres.Write.Port = "5432"
	cfg.DB.Postgres.Write.Name = "stayledger"
	cfg.DB.Postgres.Write.SSLMode = "disable"

	tests := []struct {
		name          string
		prefix        string
		table         string
		expectedPath  string
		expectedTable string
	}{
		{
			name:          "defaults migration table",
			expectedPath:  "/stayledger",
			expectedTable: "schema_migrations",
		},
		{
			name:          "prefixed database and custom table",
			prefix:        "test_",
			table:         "ledger_migrations",
			expectedPath:  "/test_stayledger",
			expectedTable: "ledger_migrations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg.DB.Postgres.Prefix = tt.prefix
			cfg.DB.Postgres.MigrationTable = tt.table

			parsed, err := url.Parse(DSN(cfg))
			require.NoError(t, err)

			password, _ := parsed.User.Password()

			assert.Equal(t, "postgres", parsed.Scheme)
			assert.Equal(t, "p@ss:word", password)
			assert.Equal(t, "db:5432", parsed.Host)
			assert.Equal(t, tt.expectedPath, parsed.Path)
			assert.Equal(t, "disable", parsed.Query().Get("sslmode"))
			assert.Equal(t, tt.expectedTable, parsed.Query().Get("x-migrations-table"))
		})
	}
}

func TestRunner_UnknownAction(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Postgres.Write.Host = "127.0.0.1"
	cfg.DB.Postgres.Write.Port = "1"

	err := Runner(cfg, "sideways")
	assert.Error(t, err)
}
