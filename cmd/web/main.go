package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/peterkuimelis/solorun/internal/campaign"
	"github.com/peterkuimelis/solorun/internal/config"
	"github.com/peterkuimelis/solorun/internal/store"
	"github.com/peterkuimelis/solorun/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	port := flag.Int("port", 8080, "HTTP port to listen on")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 for random)")
	flag.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "path to a catalog YAML file")
	flag.StringVar(&cfg.MapPath, "map", cfg.MapPath, "path to a map YAML file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.LogLevel, cfg.Dev)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	defer logger.Sync()

	catalog, graph, err := campaign.LoadContent(cfg.CatalogPath, cfg.MapPath)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	st, err := store.Open(ctx, cfg.Store, logger)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	defer st.Close()

	srv := web.NewServer(web.Config{
		Catalog: catalog,
		Graph:   graph,
		Store:   st,
		Logger:  logger.Named("web"),
		Seed:    cfg.Seed,
	})

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("solorun web UI listening", zap.String("url", fmt.Sprintf("http://localhost:%d", *port)))
	if err := srv.Run(ctx, addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
