// Package storage persists decoded AIS messages and RTCM frames.
//
// Three backends cover different roles: a local SQLite archive, a
// PostgreSQL vessel-state store, and a ClickHouse analytics stream. Each
// can be enabled independently.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"gnssd/internal/ais"
	"gnssd/internal/rtcm"
)

// Archive is the local SQLite archive of everything decoded.
type Archive struct {
	db *sql.DB
}

// OpenArchive opens or creates the archive database at the given path.
func OpenArchive(path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	// WAL keeps the ingest loop from blocking on readers.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := createArchiveSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Archive{db: db}, nil
}

// Close closes the archive database.
func (a *Archive) Close() error {
	return a.db.Close()
}

func createArchiveSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS ais_messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		received_at TEXT NOT NULL,
		msg_type INTEGER NOT NULL,
		mmsi INTEGER NOT NULL,
		device TEXT,
		payload_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_ais_messages_mmsi ON ais_messages(mmsi);
	CREATE INDEX IF NOT EXISTS idx_ais_messages_type ON ais_messages(msg_type);
	CREATE INDEX IF NOT EXISTS idx_ais_messages_received ON ais_messages(received_at);

	CREATE TABLE IF NOT EXISTS rtcm_frames (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		received_at TEXT NOT NULL,
		station_id INTEGER NOT NULL,
		msg_type INTEGER NOT NULL,
		zcount INTEGER NOT NULL,
		sequence INTEGER NOT NULL,
		health INTEGER NOT NULL,
		body_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_rtcm_frames_station ON rtcm_frames(station_id);
	CREATE INDEX IF NOT EXISTS idx_rtcm_frames_type ON rtcm_frames(msg_type);
	`
	_, err := db.Exec(schema)
	return err
}

// SaveAIS archives one decoded AIS message.
func (a *Archive) SaveAIS(ctx context.Context, received time.Time, m *ais.Message) error {
	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	_, err = a.db.ExecContext(ctx,
		`INSERT INTO ais_messages (received_at, msg_type, mmsi, device, payload_json)
		 VALUES (?, ?, ?, ?, ?)`,
		received.UTC().Format(time.RFC3339Nano), m.Type, m.MMSI, m.Device, string(payload))
	if err != nil {
		return fmt.Errorf("insert ais message: %w", err)
	}
	return nil
}

// SaveRTCM archives one decoded RTCM frame.
func (a *Archive) SaveRTCM(ctx context.Context, received time.Time, f *rtcm.Frame) error {
	body, err := json.Marshal(f.Body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	_, err = a.db.ExecContext(ctx,
		`INSERT INTO rtcm_frames (received_at, station_id, msg_type, zcount, sequence, health, body_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		received.UTC().Format(time.RFC3339Nano),
		f.Header.StationID, f.Header.MsgType, f.Header.ZCount,
		f.Header.Sequence, f.Header.Health, string(body))
	if err != nil {
		return fmt.Errorf("insert rtcm frame: %w", err)
	}
	return nil
}

// MessageCount returns the number of archived AIS messages, optionally
// filtered by message type (0 = all).
func (a *Archive) MessageCount(ctx context.Context, msgType int) (int64, error) {
	var n int64
	var err error
	if msgType == 0 {
		err = a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ais_messages`).Scan(&n)
	} else {
		err = a.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM ais_messages WHERE msg_type = ?`, msgType).Scan(&n)
	}
	return n, err
}
