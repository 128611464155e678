// Feedsim serves a synthetic aquarium snapshot stream for local viewer
// development.
//
// Usage: go run ./cmd/feedsim -addr :8765
package main

import (
	"encoding/json"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/tanklab/tankview/world"
)

// updateMessage is the wire envelope the viewer's feed client expects.
type updateMessage struct {
	Type string `json:"type"`
	world.Snapshot
}

func main() {
	addr := flag.String("addr", ":8765", "Listen address")
	tickRate := flag.Int("tick-rate", 10, "Snapshots per second")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	sim := NewSim(rngSeed)
	hub := NewHub()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.HandleWS)

	go func() {
		interval := time.Second / time.Duration(*tickRate)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		dt := interval.Seconds()
		for range ticker.C {
			sim.Step(dt)

			if hub.Viewers() == 0 {
				continue
			}

			data, err := json.Marshal(updateMessage{
				Type:     "simulation_update",
				Snapshot: sim.Snapshot(),
			})
			if err != nil {
				slog.Error("marshaling snapshot", "error", err)
				continue
			}
			hub.Broadcast(data)
		}
	}()

	slog.Info("feedsim listening", "addr", *addr, "tick_rate", *tickRate, "seed", rngSeed)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
