package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/peterkuimelis/solorun/internal/campaign"
	"github.com/peterkuimelis/solorun/internal/config"
	solomcp "github.com/peterkuimelis/solorun/internal/mcp"
	solonet "github.com/peterkuimelis/solorun/internal/net"
	"github.com/peterkuimelis/solorun/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 for random)")
	flag.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "path to a catalog YAML file")
	flag.StringVar(&cfg.MapPath, "map", cfg.MapPath, "path to a map YAML file")
	flag.Parse()

	// stdout carries the MCP stream; operational logs go to stderr.
	logger, err := config.NewLogger(cfg.LogLevel, cfg.Dev)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	defer logger.Sync()

	catalog, graph, err := campaign.LoadContent(cfg.CatalogPath, cfg.MapPath)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	st, err := store.Open(context.Background(), cfg.Store, logger)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	defer st.Close()

	sess := solomcp.NewGameSession(solonet.SessionConfig{
		Catalog: catalog,
		Graph:   graph,
		Store:   st,
		Ops:     logger,
		Seed:    cfg.Seed,
		OnBossUnlock: func(heroID string, boss campaign.Node) {
			logger.Info("boss defeated, unlock signaled", zap.String("hero", heroID), zap.String("boss", boss.Label))
		},
	})
	defer sess.Close()

	s := server.NewMCPServer("solorun", "1.0.0")
	solomcp.RegisterTools(s, sess)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
