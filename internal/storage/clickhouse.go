package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"gnssd/internal/ais"
	"gnssd/internal/rtcm"
)

// ClickHouseConfig holds ClickHouse connection settings.
type ClickHouseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// AnalyticsDB streams decoded reports into ClickHouse for offline
// analytics. Rows are append-only.
type AnalyticsDB struct {
	conn driver.Conn
}

// OpenAnalytics opens a connection to ClickHouse.
func OpenAnalytics(ctx context.Context, cfg ClickHouseConfig) (*AnalyticsDB, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:     10 * time.Second,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
	})
	if err != nil {
		return nil, fmt.Errorf("open clickhouse: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}

	return &AnalyticsDB{conn: conn}, nil
}

// Close closes the ClickHouse connection.
func (d *AnalyticsDB) Close() error {
	return d.conn.Close()
}

// CreateSchema creates the analytics tables.
func (d *AnalyticsDB) CreateSchema(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS position_reports (
			ts          DateTime64(3),
			mmsi        UInt32,
			msg_type    UInt8,
			lat         Int64,
			lon         Int64,
			speed       Int32,
			course      Int32,
			heading     Int32
		) ENGINE = MergeTree()
		ORDER BY (mmsi, ts)`,

		`CREATE TABLE IF NOT EXISTS dgps_corrections (
			ts          DateTime64(3),
			station_id  UInt16,
			msg_type    UInt8,
			zcount      UInt16,
			sat_id      UInt8,
			udre        UInt8,
			iod         UInt8,
			prc_raw     Int32,
			rrc_raw     Int32,
			prc_m       Float64,
			rrc_ms      Float64
		) ENGINE = MergeTree()
		ORDER BY (station_id, ts)`,
	}
	for _, q := range queries {
		if err := d.conn.Exec(ctx, q); err != nil {
			return fmt.Errorf("create analytics schema: %w", err)
		}
	}
	return nil
}

// SavePosition appends one position report. Non-position messages are a
// no-op.
func (d *AnalyticsDB) SavePosition(ctx context.Context, ts time.Time, m *ais.Message) error {
	var lat, lon, speed, course, heading int
	switch {
	case m.Position != nil:
		p := m.Position
		lat, lon, speed, course, heading = p.Lat, p.Lon, p.Speed, p.Course, p.Heading
	case m.ClassBPosition != nil:
		p := m.ClassBPosition
		lat, lon, speed, course, heading = p.Lat, p.Lon, p.Speed, p.Course, p.Heading
	case m.ClassBExtended != nil:
		p := m.ClassBExtended
		lat, lon, speed, course, heading = p.Lat, p.Lon, p.Speed, p.Course, p.Heading
	default:
		return nil
	}

	err := d.conn.Exec(ctx, `
		INSERT INTO position_reports (ts, mmsi, msg_type, lat, lon, speed, course, heading)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ts.UTC(), m.MMSI, uint8(m.Type), int64(lat), int64(lon),
		int32(speed), int32(course), int32(heading))
	if err != nil {
		return fmt.Errorf("insert position report: %w", err)
	}
	return nil
}

// SaveCorrections appends the entries of a type 1/9 correction frame.
// Frames with other bodies are a no-op.
func (d *AnalyticsDB) SaveCorrections(ctx context.Context, ts time.Time, f *rtcm.Frame) error {
	c, ok := f.Body.(*rtcm.Corrections)
	if !ok || len(c.Entries) == 0 {
		return nil
	}

	batch, err := d.conn.PrepareBatch(ctx, `
		INSERT INTO dgps_corrections
			(ts, station_id, msg_type, zcount, sat_id, udre, iod, prc_raw, rrc_raw, prc_m, rrc_ms)`)
	if err != nil {
		return fmt.Errorf("prepare corrections batch: %w", err)
	}
	for _, e := range c.Entries {
		if err := batch.Append(
			ts.UTC(),
			uint16(f.Header.StationID),
			uint8(f.Header.MsgType),
			uint16(f.Header.ZCount),
			uint8(e.SatID),
			uint8(e.UDRE),
			uint8(e.IOD),
			int32(e.PRC),
			int32(e.RRC),
			e.PseudorangeCorrection(),
			e.RangeRateCorrection(),
		); err != nil {
			return fmt.Errorf("append correction: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("send corrections batch: %w", err)
	}
	return nil
}
