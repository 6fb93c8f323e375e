package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/peterkuimelis/solorun/internal/campaign"
	"github.com/peterkuimelis/solorun/internal/config"
	solonet "github.com/peterkuimelis/solorun/internal/net"
	"github.com/peterkuimelis/solorun/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := os.Args[1]
	switch cmd {
	case "play":
		runPlay(ctx, os.Args[2:])
	case "host":
		runHost(ctx, os.Args[2:])
	case "join":
		runJoin(ctx, os.Args[2:])
	case "heroes":
		runHeroes(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  solorun play   [--hero H] [--seed N] [--catalog FILE] [--map FILE]")
	fmt.Println("  solorun host   [--port P] [--seed N] [--catalog FILE] [--map FILE]")
	fmt.Println("  solorun join   [--hero H] [--addr ADDR]")
	fmt.Println("  solorun heroes [--catalog FILE]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  play    Play a campaign in this terminal")
	fmt.Println("  host    Serve campaigns over TCP")
	fmt.Println("  join    Play a campaign hosted by a server")
	fmt.Println("  heroes  List the available heroes")
	fmt.Println()
	fmt.Println("Progress storage is configured with SOLORUN_STORE_* environment variables.")
}

// runtime bundles what play and host share.
type runtime struct {
	cfg    config.Config
	logger *zap.Logger
	store  *store.Layered
	sess   solonet.SessionConfig
}

func (rt *runtime) close() {
	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			rt.logger.Warn("close store", zap.Error(err))
		}
	}
	_ = rt.logger.Sync()
}

func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	return cfg
}

func setup(ctx context.Context, cfg config.Config) *runtime {
	logger, err := config.NewLogger(cfg.LogLevel, cfg.Dev)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	catalog, graph, err := campaign.LoadContent(cfg.CatalogPath, cfg.MapPath)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	st, err := store.Open(ctx, cfg.Store, logger)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	return &runtime{
		cfg:    cfg,
		logger: logger,
		store:  st,
		sess: solonet.SessionConfig{
			Catalog: catalog,
			Graph:   graph,
			Store:   st,
			Ops:     logger,
			Seed:    cfg.Seed,
			OnBossUnlock: func(heroID string, boss campaign.Node) {
				logger.Info("boss defeated, unlock signaled", zap.String("hero", heroID), zap.String("boss", boss.Label))
			},
		},
	}
}

func runPlay(ctx context.Context, args []string) {
	cfg := loadConfig()
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	fs.StringVar(&cfg.Hero, "hero", cfg.Hero, "hero id or name")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 for random)")
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "path to a catalog YAML file")
	fs.StringVar(&cfg.MapPath, "map", cfg.MapPath, "path to a map YAML file")
	fs.Parse(args)

	rt := setup(ctx, cfg)
	defer rt.close()

	// The local game runs the same session server over an in-process pipe.
	clientConn, serverConn := net.Pipe()
	srv := &solonet.Server{Session: rt.sess, Logger: rt.logger}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ServeConn(ctx, serverConn) }()

	client := solonet.NewClient(clientConn, nil, nil)
	if err := client.Join(cfg.Hero); err != nil {
		clientConn.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	err := client.RunREPL(ctx)
	clientConn.Close()
	if serveErr := <-errCh; err == nil {
		err = serveErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func runHost(ctx context.Context, args []string) {
	cfg := loadConfig()
	fs := flag.NewFlagSet("host", flag.ExitOnError)
	port := fs.String("port", "9000", "TCP port to listen on")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 for random)")
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "path to a catalog YAML file")
	fs.StringVar(&cfg.MapPath, "map", cfg.MapPath, "path to a map YAML file")
	fs.Parse(args)

	rt := setup(ctx, cfg)
	defer rt.close()

	srv := &solonet.Server{
		Addr:    ":" + *port,
		Session: rt.sess,
		Logger:  rt.logger.Named("server"),
	}
	fmt.Printf("Serving campaigns on port %s...\n", *port)
	if err := srv.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

func runJoin(ctx context.Context, args []string) {
	cfg := loadConfig()
	fs := flag.NewFlagSet("join", flag.ExitOnError)
	fs.StringVar(&cfg.Hero, "hero", cfg.Hero, "hero id or name")
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	fs.Parse(args)

	if err := solonet.Connect(ctx, *addr, cfg.Hero); err != nil {
		config.Exitf("Error: %v", err)
	}
}

func runHeroes(args []string) {
	cfg := loadConfig()
	fs := flag.NewFlagSet("heroes", flag.ExitOnError)
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "path to a catalog YAML file")
	fs.Parse(args)

	catalog, _, err := campaign.LoadContent(cfg.CatalogPath, "")
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	for _, h := range catalog.Heroes() {
		fmt.Printf("%-14s %-14s %-10s HP %2d  DEF %d  Resources %d  Signature %s + %s\n",
			h.ID, h.Name, h.Class, h.BaseHP, h.BaseDef, h.ResourceMax, h.Signature.A, h.Signature.B)
	}
}
