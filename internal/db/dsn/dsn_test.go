package dsn

import (
	"testing"

	"github.com/spoolkeeper/spoolkeeper/internal/config"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      config.Config
		expected string
	}{
		{
			name: "mysql",
			cfg: config.Config{
				DB: config.DB{
					GormEngine: config.EngineMySQL,
					User:       "spoolkeeper",
					Password:   "secret",
					Host:       "127.0.0.1",
					Port:       3306,
					Name:       "spoolkeeper",
					Extras:     "parseTime=True",
				},
			},
			expected: "spoolkeeper:secret@tcp(127.0.0.1:3306)/spoolkeeper?parseTime=True",
		},
		{
			name: "postgres",
			cfg: config.Config{
				DB: config.DB{
					GormEngine: config.EnginePostgres,
					User:       "spoolkeeper",
					Password:   "secret",
					Host:       "127.0.0.1",
					Port:       5432,
					Name:       "spoolkeeper",
					Extras:     "sslmode=disable",
				},
			},
			expected: "host=127.0.0.1 user=spoolkeeper password=secret dbname=spoolkeeper port=5432 sslmode=disable",
		},
		{
			name: "sqlite uses the name as a file path",
			cfg: config.Config{
				DB: config.DB{
					GormEngine: config.EngineSQLite,
					Name:       "./spoolkeeper.db",
				},
			},
			expected: "./spoolkeeper.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Create(&tt.cfg); got != tt.expected {
				t.Errorf("Create() = %q, want %q", got, tt.expected)
			}
		})
	}
}
