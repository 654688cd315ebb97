package confloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	Server struct {
		Redis struct {
			Addr        string        `koanf:"addr"`
			ReadTimeout time.Duration `koanf:"read_timeout"`
			RateLimit   int           `koanf:"rate_limit"`
		} `koanf:"redis"`
	} `koanf:"server"`
	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

func defaults() *testConfig {
	cfg := &testConfig{}
	cfg.Server.Redis.Addr = "127.0.0.1:6379"
	cfg.Server.Redis.ReadTimeout = 30 * time.Second
	cfg.Log.Level = "info"
	return cfg
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}
	if l.IsLoaded() {
		t.Error("IsLoaded() = true before Load")
	}

	l = NewLoader(WithEnvPrefix("TEST_"), WithConfigFile("/etc/respkv.yaml"))
	if l.envPrefix != "TEST_" {
		t.Errorf("envPrefix = %q, want TEST_", l.envPrefix)
	}
	if l.FilePath() != "/etc/respkv.yaml" {
		t.Errorf("FilePath() = %q", l.FilePath())
	}
}

func TestLoader_LoadKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  redis:
    read_timeout: 5s
`)
	cfg := defaults()
	l := NewLoader(WithConfigFile(path), WithEnvPrefix("RESPKV_TEST_NONE_"))
	if err := l.Load(cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Redis.ReadTimeout != 5*time.Second {
		t.Errorf("ReadTimeout = %v, want 5s", cfg.Server.Redis.ReadTimeout)
	}
	if cfg.Server.Redis.Addr != "127.0.0.1:6379" {
		t.Errorf("Addr = %q, default should survive", cfg.Server.Redis.Addr)
	}
	if !l.IsLoaded() {
		t.Error("IsLoaded() = false after Load")
	}
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
server:
  redis:
    addr: "0.0.0.0:7000"
log:
  level: warn
`)
	t.Setenv("RESPKV_T1_SERVER__REDIS__ADDR", "0.0.0.0:7001")
	t.Setenv("RESPKV_T1_SERVER__REDIS__RATE_LIMIT", "250")

	cfg := defaults()
	l := NewLoader(WithConfigFile(path), WithEnvPrefix("RESPKV_T1_"))
	if err := l.Load(cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Redis.Addr != "0.0.0.0:7001" {
		t.Errorf("Addr = %q, want env value", cfg.Server.Redis.Addr)
	}
	if cfg.Server.Redis.RateLimit != 250 {
		t.Errorf("RateLimit = %d, want 250", cfg.Server.Redis.RateLimit)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want file value", cfg.Log.Level)
	}
}

func TestLoader_LoadMapOverridesAll(t *testing.T) {
	t.Setenv("RESPKV_T2_LOG__LEVEL", "error")

	cfg := defaults()
	l := NewLoader(WithEnvPrefix("RESPKV_T2_"))
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if err := l.LoadMap(map[string]any{"log.level": "debug"}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}
	if err := l.Unmarshal(cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want flag value", cfg.Log.Level)
	}
	if l.GetString("log.level") != "debug" {
		t.Errorf("GetString(log.level) = %q", l.GetString("log.level"))
	}
}

func TestLoader_Reload(t *testing.T) {
	path := writeConfig(t, "log:\n  level: warn\n")

	cfg := defaults()
	l := NewLoader(WithConfigFile(path), WithEnvPrefix("RESPKV_T3_"))
	if err := l.Load(cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg = defaults()
	if err := l.Reload(cfg); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q after reload, want debug", cfg.Log.Level)
	}
}

func TestLoader_Errors(t *testing.T) {
	l := NewLoader()
	if err := l.LoadFile("/nonexistent/respkv.yaml"); err == nil {
		t.Error("LoadFile() expected error for missing file")
	}

	bad := writeConfig(t, "server: [unclosed")
	if err := NewLoader(WithConfigFile(bad)).Load(defaults()); err == nil {
		t.Error("Load() expected error for invalid YAML")
	}

	if err := l.LoadFile(""); err != nil {
		t.Errorf("LoadFile(\"\") error = %v, want nil", err)
	}
	if err := l.LoadMap(nil); err != nil {
		t.Errorf("LoadMap(nil) error = %v, want nil", err)
	}
}

func TestEnvKey(t *testing.T) {
	l := NewLoader()
	tests := []struct {
		in   string
		want string
	}{
		{"RESPKV_LOG__LEVEL", "log.level"},
		{"RESPKV_SERVER__REDIS__READ_TIMEOUT", "server.redis.read_timeout"},
		{"RESPKV_STORAGE__SHARD_COUNT", "storage.shard_count"},
	}
	for _, tt := range tests {
		if got := l.envKey(tt.in); got != tt.want {
			t.Errorf("envKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMapProvider(t *testing.T) {
	p := mapProvider{"a.b": 1, "a.c": "x"}
	if _, err := p.ReadBytes(); err != ErrReadBytesNotSupported {
		t.Errorf("ReadBytes() error = %v", err)
	}
	m, err := p.Read()
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	inner, ok := m["a"].(map[string]any)
	if !ok || inner["b"] != 1 || inner["c"] != "x" {
		t.Errorf("Read() = %v, want nested map", m)
	}
}
