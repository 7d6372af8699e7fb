package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	workdir := t.TempDir()
	t.Setenv("CAMPUSMARKET_WORKDIR", workdir)

	cfg := LoadConfig("")
	assert.Equal(t, workdir, cfg.System.Workdir)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.NotEmpty(t, cfg.Web.SessionSecret)
	assert.NotEmpty(t, cfg.Web.JwtSecret)

	// workdir layout is created on load
	for _, dir := range []string{cfg.GetLogDir(), cfg.GetDataDir(), cfg.GetUploadDir()} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestLoadConfigFile(t *testing.T) {
	workdir := t.TempDir()
	cfile := filepath.Join(workdir, "campusmarket.yml")
	require.NoError(t, os.WriteFile(cfile, []byte(`
system:
  workdir: `+workdir+`
web:
  host: 127.0.0.1
  port: 9090
  session_secret: fixed-secret
  jwt_secret: fixed-jwt
database:
  type: postgres
  host: db.internal
  port: 5433
  name: market
`), 0644))

	cfg := LoadConfig(cfile)
	assert.Equal(t, "127.0.0.1", cfg.Web.Host)
	assert.Equal(t, 9090, cfg.Web.Port)
	assert.Equal(t, "fixed-secret", cfg.Web.SessionSecret)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "market", cfg.Database.Name)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	workdir := t.TempDir()
	t.Setenv("CAMPUSMARKET_WORKDIR", workdir)
	t.Setenv("CAMPUSMARKET_DB_HOST", "env-host")
	t.Setenv("CAMPUSMARKET_DB_PORT", "5444")
	t.Setenv("CAMPUSMARKET_WEB_SECRET", "env-secret")

	cfg := LoadConfig("")
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, 5444, cfg.Database.Port)
	assert.Equal(t, "env-secret", cfg.Web.SessionSecret)
}

func TestLoadConfigLeavesDefaultsUntouched(t *testing.T) {
	workdir := t.TempDir()
	t.Setenv("CAMPUSMARKET_WORKDIR", workdir)
	t.Setenv("CAMPUSMARKET_DB_HOST", "env-host")
	t.Setenv("CAMPUSMARKET_WEB_SECRET", "env-secret")

	before := *DefaultAppConfig
	_ = LoadConfig("")
	assert.Equal(t, before, *DefaultAppConfig)
}

func TestUploadDirDefault(t *testing.T) {
	cfg := &AppConfig{System: SysConfig{Workdir: "/srv/market"}}
	assert.Equal(t, filepath.Join("/srv/market", "uploads"), cfg.GetUploadDir())

	cfg.Web.UploadDir = "/data/uploads"
	assert.Equal(t, "/data/uploads", cfg.GetUploadDir())
}
