package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/cobreuse/api/solves"
	"github.com/kilianp07/cobreuse/infra/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the solve API and Prometheus metrics over HTTP",
	Args:  cobra.NoArgs,
	RunE:  serve,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func serve(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logg := logger.New("serve-command")
	p, store, err := newPlanner(cfg, logg)
	if err != nil {
		return err
	}
	defer func() {
		if err := p.Close(); err != nil {
			logg.Errorf("planner close: %v", err)
		}
	}()

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	return solves.Serve(ctx, addr, solves.NewMux(p, store, cfg.Server.Token), logg)
}
