package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_DRIVER", "")
	t.Setenv("ENV", "")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "development", cfg.Env)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "8080", cfg.Server.Port)
	require.Equal(t, "ladino_session", cfg.Session.CookieName)
	require.Equal(t, 12*time.Hour, cfg.Session.TTL)
	require.Equal(t, "plain", cfg.Security.PasswordHasher)
	require.Equal(t, "pt-BR", cfg.I18n.DefaultLanguage)
	require.NotEmpty(t, cfg.Session.Secret, "development gets a fallback secret")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_HOST", "db.local")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_USER", "ladino")
	t.Setenv("DB_PASS", "segredo")
	t.Setenv("DB_NAME", "site")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("PASSWORD_HASHER", "bcrypt")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 30*time.Minute, cfg.Session.TTL)
	require.Equal(t, "bcrypt", cfg.Security.PasswordHasher)
	require.Equal(t, "ladino:segredo@tcp(db.local:3306)/site?charset=utf8mb4&parseTime=True&loc=UTC", cfg.Database.DSN())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "driver desconhecido",
			cfg: Config{
				Database: DatabaseConfig{Driver: "oracle"},
				Security: SecurityConfig{PasswordHasher: "plain"},
			},
			wantErr: true,
		},
		{
			name: "hasher desconhecido",
			cfg: Config{
				Database: DatabaseConfig{Driver: "sqlite"},
				Security: SecurityConfig{PasswordHasher: "md5"},
			},
			wantErr: true,
		},
		{
			name: "produção exige segredo de sessão",
			cfg: Config{
				Env:      "production",
				Database: DatabaseConfig{Driver: "postgres"},
				Security: SecurityConfig{PasswordHasher: "plain"},
			},
			wantErr: true,
		},
		{
			name: "configuração válida",
			cfg: Config{
				Env:      "production",
				Database: DatabaseConfig{Driver: "postgres"},
				Security: SecurityConfig{PasswordHasher: "bcrypt"},
				Session:  SessionConfig{Secret: "s3cr3t"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	pg := DatabaseConfig{Driver: "postgres", Host: "h", Port: 5432, User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	require.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable", pg.DSN())

	lite := DatabaseConfig{Driver: "sqlite", Path: "/tmp/ladino.db"}
	require.Equal(t, "/tmp/ladino.db", lite.DSN())
}
