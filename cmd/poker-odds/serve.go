package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cynthiacxzhang/range-equity-agent/internal/server"
)

// ServeCmd runs the JSON API and websocket progress stream.
type ServeCmd struct {
	Addr string `short:"a" help:"Address to bind to (overrides config)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	addr := g.cfg.ServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	sim := g.cfg.Simulation
	srv := server.New(server.Options{
		Addr: addr,
		Defaults: server.Defaults{
			Iterations: sim.Iterations,
			ChunkSize:  sim.ChunkSize,
			Workers:    sim.Workers,
			Players:    sim.Players,
		},
		Presets: g.cfg.PresetBook(),
		Logger:  g.logger,
	})

	g.logger.Info("Starting poker-odds service",
		"addr", addr,
		"iterations", sim.Iterations,
		"workers", sim.Workers,
		"presets", len(g.cfg.Presets))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}
