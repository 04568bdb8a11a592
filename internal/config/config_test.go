package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigSuite struct {
	suite.Suite
	dir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) SetupTest() {
	s.dir = s.T().TempDir()
	for _, key := range []string{"JEOPARDY_STORAGE_TYPE", "REDIS_URL", "DATABASE_URL", "JEOPARDY_SQLITE_PATH", "JEOPARDY_QUESTIONS", "PORT", "LOG_LEVEL"} {
		s.T().Setenv(key, "")
	}
}

func (s *ConfigSuite) writeFile(body string) string {
	path := filepath.Join(s.dir, "config.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(body), 0o644))
	return path
}

func (s *ConfigSuite) TestDefaults() {
	cfg, err := Load("")
	s.Require().NoError(err)

	s.Equal(StorageMemory, cfg.Storage.Type)
	s.Equal(8080, cfg.Server.Port)
	s.Equal(2, cfg.Match.MinPlayers)
	s.Equal(":8080", cfg.Server.Addr())
	s.Empty(cfg.Questions.Path)
}

func (s *ConfigSuite) TestLoadYAML() {
	path := s.writeFile(`
server:
  host: 127.0.0.1
  port: 9090
storage:
  type: redis
  redis:
    url: redis://cache:6379/1
    save_ttl: 72h
match:
  min_players: 3
log:
  level: debug
`)

	cfg, err := Load(path)
	s.Require().NoError(err)

	s.Equal("127.0.0.1:9090", cfg.Server.Addr())
	s.Equal(StorageRedis, cfg.Storage.Type)
	s.Equal("redis://cache:6379/1", cfg.Storage.Redis.URL)
	s.Equal(10, cfg.Storage.Redis.PoolSize, "unset keys keep defaults")
	s.Equal(72*time.Hour, TTLDuration(cfg.Storage.Redis.SaveTTL, 0))
	s.Equal(3, cfg.Match.MinPlayers)
	s.Equal(slog.LevelDebug, cfg.Log.LogLevel())
}

func (s *ConfigSuite) TestEnvOverridesFile() {
	path := s.writeFile("storage:\n  type: redis\n")
	s.T().Setenv("JEOPARDY_STORAGE_TYPE", "sqlite")
	s.T().Setenv("JEOPARDY_SQLITE_PATH", "/tmp/j.db")
	s.T().Setenv("PORT", "7000")
	s.T().Setenv("JEOPARDY_QUESTIONS", "/data/q.yaml")

	cfg, err := Load(path)
	s.Require().NoError(err)

	s.Equal(StorageSQLite, cfg.Storage.Type)
	s.Equal("/tmp/j.db", cfg.Storage.SQLite.Path)
	s.Equal(7000, cfg.Server.Port)
	s.Equal("/data/q.yaml", cfg.Questions.Path)
}

func (s *ConfigSuite) TestInvalidStorageType() {
	path := s.writeFile("storage:\n  type: mongo\n")
	_, err := Load(path)
	s.ErrorContains(err, "invalid storage type")
}

func (s *ConfigSuite) TestPostgresNeedsURL() {
	s.T().Setenv("JEOPARDY_STORAGE_TYPE", "postgres")
	_, err := Load("")
	s.ErrorContains(err, "postgres url")

	s.T().Setenv("DATABASE_URL", "postgres://localhost/jeopardy")
	cfg, err := Load("")
	s.Require().NoError(err)
	s.True(cfg.Storage.Postgres.Migrate)
}

func (s *ConfigSuite) TestMissingFile() {
	_, err := Load(filepath.Join(s.dir, "missing.yaml"))
	s.Error(err)
}

func (s *ConfigSuite) TestTTLDurationFallback() {
	s.Equal(time.Minute, TTLDuration("", time.Minute))
	s.Equal(time.Minute, TTLDuration("soon", time.Minute))
	s.Equal(2*time.Second, TTLDuration("2s", time.Minute))
}
