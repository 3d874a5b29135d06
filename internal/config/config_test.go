package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gnssd.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
nats:
  subject: ais.feed
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NATS.URL != "nats://localhost:4222" {
		t.Errorf("NATS.URL = %q", cfg.NATS.URL)
	}
	if cfg.DevicePathMax != 64 {
		t.Errorf("DevicePathMax = %d, want 64", cfg.DevicePathMax)
	}
}

func TestLoadFull(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
nats:
  url: nats://feed.example:4222
  subject: ais.raw
  queue: gnssd
rtcm:
  enable: true
  path: /var/run/rtcm.words
storage:
  sqlite_path: /var/lib/gnssd/archive.db
  postgres_enabled: true
  postgres:
    host: db.example
    port: 5432
    database: vessels
    user: gnssd
    password: secret
logs:
  directory: /var/log/gnssd
device_path_max: 32
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NATS.Queue != "gnssd" {
		t.Errorf("NATS.Queue = %q", cfg.NATS.Queue)
	}
	if !cfg.RTCM.Enable || cfg.RTCM.Path != "/var/run/rtcm.words" {
		t.Errorf("RTCM = %+v", cfg.RTCM)
	}
	if cfg.Storage.Postgres.Host != "db.example" {
		t.Errorf("Postgres.Host = %q", cfg.Storage.Postgres.Host)
	}
	if cfg.Logs.MaxSizeMB != 50 || cfg.Logs.MaxBackups != 5 {
		t.Errorf("log defaults not applied: %+v", cfg.Logs)
	}
	if cfg.DevicePathMax != 32 {
		t.Errorf("DevicePathMax = %d, want 32", cfg.DevicePathMax)
	}
}

func TestLoadRejectsMissingSubject(t *testing.T) {
	if _, err := Load(writeConfig(t, `nats: {url: nats://x:4222}`)); err == nil {
		t.Error("expected error for missing nats.subject")
	}
}

func TestLoadRejectsRTCMWithoutPath(t *testing.T) {
	if _, err := Load(writeConfig(t, `
nats:
  subject: ais.feed
rtcm:
  enable: true
`)); err == nil {
		t.Error("expected error for rtcm.enable without rtcm.path")
	}
}
