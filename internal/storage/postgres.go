package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"gnssd/internal/ais"
)

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// StateDB keeps the mutable per-vessel state in PostgreSQL: one row per
// MMSI, updated as position and voyage reports arrive.
type StateDB struct {
	pool *pgxpool.Pool
}

// OpenState opens a connection pool to PostgreSQL.
func OpenState(ctx context.Context, cfg PostgresConfig) (*StateDB, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &StateDB{pool: pool}, nil
}

// Close closes the connection pool.
func (s *StateDB) Close() {
	s.pool.Close()
}

// CreateSchema creates the vessel state tables.
func (s *StateDB) CreateSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS vessels (
		mmsi            BIGINT PRIMARY KEY,
		first_seen      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_seen       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_msg_type   INTEGER,
		lat             BIGINT,
		lon             BIGINT,
		speed           INTEGER,
		course          INTEGER,
		heading         INTEGER,
		shipname        TEXT,
		callsign        TEXT,
		shiptype        INTEGER,
		destination     TEXT,
		draught         INTEGER,
		msg_count       BIGINT NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_vessels_last_seen ON vessels(last_seen);
	CREATE INDEX IF NOT EXISTS idx_vessels_shipname ON vessels(shipname);
	`
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create vessels schema: %w", err)
	}
	return nil
}

// Update folds one decoded message into the vessel row. Position reports
// (types 1-3, 18, 19) update the kinematic columns; static reports (types
// 5 and 24) update identity and voyage columns; everything else only
// refreshes last_seen and the message counter.
func (s *StateDB) Update(ctx context.Context, seen time.Time, m *ais.Message) error {
	if _, err := s.pool.Exec(ctx, `
		INSERT INTO vessels (mmsi, first_seen, last_seen, last_msg_type, msg_count)
		VALUES ($1, $2, $2, $3, 1)
		ON CONFLICT (mmsi) DO UPDATE SET
			last_seen = EXCLUDED.last_seen,
			last_msg_type = EXCLUDED.last_msg_type,
			msg_count = vessels.msg_count + 1`,
		int64(m.MMSI), seen.UTC(), m.Type); err != nil {
		return fmt.Errorf("upsert vessel: %w", err)
	}

	switch {
	case m.Position != nil:
		p := m.Position
		return s.setKinematics(ctx, m.MMSI, p.Lat, p.Lon, p.Speed, p.Course, p.Heading)
	case m.ClassBPosition != nil:
		p := m.ClassBPosition
		return s.setKinematics(ctx, m.MMSI, p.Lat, p.Lon, p.Speed, p.Course, p.Heading)
	case m.ClassBExtended != nil:
		p := m.ClassBExtended
		if err := s.setKinematics(ctx, m.MMSI, p.Lat, p.Lon, p.Speed, p.Course, p.Heading); err != nil {
			return err
		}
		_, err := s.pool.Exec(ctx,
			`UPDATE vessels SET shipname = $2, shiptype = $3 WHERE mmsi = $1`,
			int64(m.MMSI), p.Shipname, p.Shiptype)
		return err
	case m.StaticVoyage != nil:
		v := m.StaticVoyage
		_, err := s.pool.Exec(ctx, `
			UPDATE vessels SET shipname = $2, callsign = $3, shiptype = $4,
				destination = $5, draught = $6
			WHERE mmsi = $1`,
			int64(m.MMSI), v.Shipname, v.Callsign, v.Shiptype, v.Destination, v.Draught)
		return err
	case m.StaticData != nil:
		d := m.StaticData
		_, err := s.pool.Exec(ctx, `
			UPDATE vessels SET shipname = COALESCE(NULLIF($2, ''), shipname),
				callsign = COALESCE(NULLIF($3, ''), callsign)
			WHERE mmsi = $1`,
			int64(m.MMSI), d.Shipname, d.Callsign)
		return err
	}
	return nil
}

func (s *StateDB) setKinematics(ctx context.Context, mmsi uint32, lat, lon, speed, course, heading int) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE vessels SET lat = $2, lon = $3, speed = $4, course = $5, heading = $6
		WHERE mmsi = $1`,
		int64(mmsi), lat, lon, speed, course, heading)
	if err != nil {
		return fmt.Errorf("update kinematics: %w", err)
	}
	return nil
}

// VesselCount returns the number of tracked vessels.
func (s *StateDB) VesselCount(ctx context.Context) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vessels`).Scan(&n)
	return n, err
}
