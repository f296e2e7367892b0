package config

import "testing"

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}

	if cfg.Server.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Server.Port)
	}
	if cfg.Server.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.Server.LogLevel)
	}
	if cfg.Storage.Path != "updates.db" {
		t.Errorf("Storage.Path = %q, want updates.db", cfg.Storage.Path)
	}
	if cfg.Cache.Type != "memory" {
		t.Errorf("Cache.Type = %q, want memory", cfg.Cache.Type)
	}
	if cfg.Auth.EditorToken != "" {
		t.Errorf("EditorToken = %q, want empty", cfg.Auth.EditorToken)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_PATH", "/var/data/updates.db")
	t.Setenv("CACHE_TYPE", "redis")
	t.Setenv("REDIS_ADDRESS", "redis:6379")
	t.Setenv("RATE_LIMIT", "50")
	t.Setenv("EDITOR_TOKEN", "s3cret")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Storage.Path != "/var/data/updates.db" {
		t.Errorf("Storage.Path = %q", cfg.Storage.Path)
	}
	if cfg.Cache.Type != "redis" || cfg.Cache.Redis.Address != "redis:6379" {
		t.Errorf("cache config = %+v", cfg.Cache)
	}
	if cfg.Server.RateLimit != 50 {
		t.Errorf("RateLimit = %d, want 50", cfg.Server.RateLimit)
	}
	if cfg.Auth.EditorToken != "s3cret" {
		t.Errorf("EditorToken = %q, want s3cret", cfg.Auth.EditorToken)
	}
}

func TestLoadFromEnv_UnparsableIntFallsBack(t *testing.T) {
	t.Setenv("RATE_LIMIT", "many")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv returned error: %v", err)
	}

	if cfg.Server.RateLimit != 100 {
		t.Errorf("RateLimit = %d, want the default 100", cfg.Server.RateLimit)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: "8000", RateLimit: 100, RateWindowSeconds: 60},
			Storage: StorageConfig{Path: "updates.db"},
			Cache:   CacheConfig{Type: "memory"},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.Server.Port = "" }},
		{"empty storage path", func(c *Config) { c.Storage.Path = "" }},
		{"unknown cache type", func(c *Config) { c.Cache.Type = "memcached" }},
		{"redis without address", func(c *Config) { c.Cache.Type = "redis"; c.Cache.Redis.Address = "" }},
		{"negative rate limit", func(c *Config) { c.Server.RateLimit = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
