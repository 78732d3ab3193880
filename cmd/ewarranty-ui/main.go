package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kokweikhong/profilm_ewarranty/ui/internal/logger"
	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/config"
	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/endpoint"
	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/server"
	"github.com/kokweikhong/profilm_ewarranty/ui/internal/ui/types"
	"github.com/kokweikhong/profilm_ewarranty/ui/internal/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "ewarranty-ui",
		Short: "Profilm e-warranty web user interface",
		Long:  `Web UI for reviewing warranty claims served by the e-warranty API`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "file of environment variables to load before reading the configuration (variables already set take precedence)")

	cmd.Version = version.Get().String()

	cmd.AddCommand(newCarPartsCmd())
	return cmd
}

// newCarPartsCmd lists the car part codes used on warranty claims
func newCarPartsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "car-parts",
		Short: "List the car part codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME")
			for _, p := range types.CarParts() {
				fmt.Fprintf(w, "%s\t%s\n", p.Code, p.Name)
			}
			return w.Flush()
		},
	}
}

func run(envFile string) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("Failed to load env file", slog.String("file", envFile), slog.String("error", err.Error()))
		return err
	}

	cfg, err := config.NewConfig()
	if err != nil {
		slog.Error("Failed to load UI configuration", slog.String("error", err.Error()))
		return err
	}

	serverLogger := logger.InitLogger(logger.ParseLogLevel(cfg.LogLevel), cfg.Environment)
	slog.SetDefault(serverLogger)

	serverLogger.Info("Starting UI server", slog.String("version", version.Get().String()))
	serverLogger.Info("using e-warranty API", slog.String("base_url", endpoint.NewResolver(cfg.APIRoot()).Base()))

	s := server.NewServer(cfg, serverLogger)

	// Set up graceful shutdown handling
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := s.Start(ctx); err != nil {
		serverLogger.Error("UI server error", slog.String("error", err.Error()))
		return err
	}

	serverLogger.Info("UI server shutdown complete")
	return nil
}
