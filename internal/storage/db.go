package storage

import (
	"context"
	"fmt"
	"time"

	"gnssd/internal/ais"
	"gnssd/internal/rtcm"
)

// Config selects and configures the enabled backends. An empty SQLitePath
// disables the archive; the Enabled flags gate the network stores.
type Config struct {
	SQLitePath string `yaml:"sqlite_path"`

	PostgresEnabled bool           `yaml:"postgres_enabled"`
	Postgres        PostgresConfig `yaml:"postgres"`

	ClickHouseEnabled bool             `yaml:"clickhouse_enabled"`
	ClickHouse        ClickHouseConfig `yaml:"clickhouse"`
}

// DB fans decoded records out to whichever backends are open. Nil members
// are skipped.
type DB struct {
	Archive   *Archive
	State     *StateDB
	Analytics *AnalyticsDB
}

// Open opens the configured backends, creating schemas as needed.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	db := &DB{}

	if cfg.SQLitePath != "" {
		a, err := OpenArchive(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("archive: %w", err)
		}
		db.Archive = a
	}

	if cfg.PostgresEnabled {
		st, err := OpenState(ctx, cfg.Postgres)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("postgres: %w", err)
		}
		if err := st.CreateSchema(ctx); err != nil {
			st.Close()
			_ = db.Close()
			return nil, fmt.Errorf("postgres schema: %w", err)
		}
		db.State = st
	}

	if cfg.ClickHouseEnabled {
		an, err := OpenAnalytics(ctx, cfg.ClickHouse)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("clickhouse: %w", err)
		}
		if err := an.CreateSchema(ctx); err != nil {
			_ = an.Close()
			_ = db.Close()
			return nil, fmt.Errorf("clickhouse schema: %w", err)
		}
		db.Analytics = an
	}

	return db, nil
}

// Close closes every open backend, returning the first error.
func (d *DB) Close() error {
	var first error
	if d.Archive != nil {
		if err := d.Archive.Close(); err != nil && first == nil {
			first = fmt.Errorf("archive: %w", err)
		}
	}
	if d.State != nil {
		d.State.Close()
	}
	if d.Analytics != nil {
		if err := d.Analytics.Close(); err != nil && first == nil {
			first = fmt.Errorf("clickhouse: %w", err)
		}
	}
	return first
}

// StoreAIS fans one decoded AIS message out to all open backends.
func (d *DB) StoreAIS(ctx context.Context, received time.Time, m *ais.Message) error {
	if d.Archive != nil {
		if err := d.Archive.SaveAIS(ctx, received, m); err != nil {
			return err
		}
	}
	if d.State != nil {
		if err := d.State.Update(ctx, received, m); err != nil {
			return err
		}
	}
	if d.Analytics != nil {
		if err := d.Analytics.SavePosition(ctx, received, m); err != nil {
			return err
		}
	}
	return nil
}

// StoreRTCM fans one decoded RTCM frame out to all open backends.
func (d *DB) StoreRTCM(ctx context.Context, received time.Time, f *rtcm.Frame) error {
	if d.Archive != nil {
		if err := d.Archive.SaveRTCM(ctx, received, f); err != nil {
			return err
		}
	}
	if d.Analytics != nil {
		if err := d.Analytics.SaveCorrections(ctx, received, f); err != nil {
			return err
		}
	}
	return nil
}
