// gnssd is the GNSS/marine receiver decoding daemon. It subscribes to an
// AIS JSON feed over NATS, optionally consumes an RTCM-104 word stream,
// and fans decoded records out to the configured storage backends.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"gnssd/internal/ais"
	"gnssd/internal/config"
	"gnssd/internal/ingest"
	"gnssd/internal/rtcm"
	"gnssd/internal/storage"
)

type counters struct {
	aisDecoded  atomic.Int64
	aisRejected atomic.Int64
	rtcmFrames  atomic.Int64
	storeErrors atomic.Int64
}

func main() {
	cfgPath := flag.String("config", "/etc/gnssd/gnssd.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(os.Stderr, "[gnssd] ", log.LstdFlags|log.Lmicroseconds)
	if cfg.Logs.Directory != "" {
		rotator := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Logs.Directory, "gnssd.log"),
			MaxSize:    cfg.Logs.MaxSizeMB,
			MaxAge:     cfg.Logs.MaxAgeDays,
			MaxBackups: cfg.Logs.MaxBackups,
			Compress:   cfg.Logs.Compress,
		}
		defer rotator.Close()
		logger.SetOutput(io.MultiWriter(os.Stderr, rotator))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		logger.Fatalf("open storage: %v", err)
	}
	defer db.Close()

	var (
		stats   counters
		decoder ais.Decoder
		pathBuf = make([]byte, cfg.DevicePathMax)
	)

	// NATS delivers messages for one subscription on a single goroutine,
	// so the decoder and path buffer need no locking here.
	consumer, err := ingest.Subscribe(cfg.NATS.URL, cfg.NATS.Subject, cfg.NATS.Queue, func(data []byte) {
		m, err := decoder.Decode(data, pathBuf)
		if err != nil {
			stats.aisRejected.Add(1)
			logger.Printf("ais decode: %v", err)
			return
		}
		stats.aisDecoded.Add(1)
		if err := db.StoreAIS(ctx, time.Now(), m); err != nil {
			stats.storeErrors.Add(1)
			logger.Printf("store ais: %v", err)
		}
	})
	if err != nil {
		logger.Fatalf("nats: %v", err)
	}
	defer consumer.Close()
	logger.Printf("subscribed to %s on %s", cfg.NATS.Subject, cfg.NATS.URL)

	if cfg.RTCM.Enable {
		go runRTCM(ctx, cfg.RTCM.Path, db, logger, &stats)
	}

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Printf("shutting down: ais=%d rejected=%d rtcm=%d store_errors=%d",
				stats.aisDecoded.Load(), stats.aisRejected.Load(),
				stats.rtcmFrames.Load(), stats.storeErrors.Load())
			return
		case <-ticker.C:
			logger.Printf("stats: ais=%d rejected=%d rtcm=%d store_errors=%d",
				stats.aisDecoded.Load(), stats.aisRejected.Load(),
				stats.rtcmFrames.Load(), stats.storeErrors.Load())
		}
	}
}

// runRTCM feeds the word stream through a per-channel synchronizer and
// stores every decoded frame. Unsupported message types are logged once
// per frame and dropped.
func runRTCM(ctx context.Context, path string, db *storage.DB, logger *log.Logger, stats *counters) {
	f, err := os.Open(path)
	if err != nil {
		logger.Printf("rtcm input: %v", err)
		return
	}
	defer f.Close()

	sync := rtcm.NewSync()
	err = ingest.ReadWords(f, func(w uint32) {
		if sync.Feed(w) != rtcm.FrameReady {
			return
		}
		frame, err := rtcm.DecodeFrame(sync.Frame())
		if err != nil {
			logger.Printf("rtcm decode: %v", err)
			return
		}
		stats.rtcmFrames.Add(1)
		if err := db.StoreRTCM(ctx, time.Now(), frame); err != nil {
			stats.storeErrors.Add(1)
			logger.Printf("store rtcm: %v", err)
		}
	})
	if err != nil {
		logger.Printf("rtcm read: %v", err)
	}
}
