package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lemonberrylabs/numcalc/pkg/api"
	grpcapi "github.com/lemonberrylabs/numcalc/pkg/api/grpc"
	"github.com/lemonberrylabs/numcalc/pkg/expr"
	"github.com/lemonberrylabs/numcalc/pkg/parser"
	"github.com/lemonberrylabs/numcalc/pkg/repl"
	"github.com/lemonberrylabs/numcalc/pkg/store"
	"github.com/lemonberrylabs/numcalc/pkg/types"
	"github.com/lemonberrylabs/numcalc/web"
)

func runREPL(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	history := store.New(cfg.HistoryLimit)
	logger.Debug("starting repl", zap.Int("historyLimit", cfg.HistoryLimit))
	return repl.New(cmd.InOrStdin(), cmd.OutOrStdout(), logger, history).Run(ctx)
}

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate a single expression",
		Example: `  numcalc eval "IV * II"
  numcalc eval 10/3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			line := strings.Join(args, " ")

			out, err := expr.Evaluate(line)
			if err != nil {
				logger.Debug("evaluation failed", zap.String("input", line), zap.Error(err))
				return fmt.Errorf("%s", types.Message(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newBatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch <file.yaml>",
		Short: "Evaluate every expression in a YAML batch file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			b, err := parser.Parse(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			report := b.Run()
			w := cmd.OutOrStdout()
			for _, r := range report.Results {
				mark := "ok  "
				if !r.Passed {
					mark = "FAIL"
				}
				if r.Err != nil {
					fmt.Fprintf(w, "%s %s: %s => %s (%s)\n", mark, r.Case.Name, r.Case.Expression, types.KindOf(r.Err), types.Message(r.Err))
				} else {
					fmt.Fprintf(w, "%s %s: %s => %s\n", mark, r.Case.Name, r.Case.Expression, r.Output)
				}
			}
			fmt.Fprintf(w, "%d passed, %d failed\n", report.Passed, report.Failed)

			logger.Info("batch finished",
				zap.String("file", args[0]),
				zap.Int("passed", report.Passed),
				zap.Int("failed", report.Failed))
			if report.Failed > 0 {
				return errors.New("batch had failures")
			}
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API, web UI and gRPC servers",
		RunE:  runServe,
	}
	cmd.Flags().Int("port", 0, "HTTP server port (default 8787, env PORT)")
	cmd.Flags().Int("grpc-port", 0, "gRPC server port (default 8788, env GRPC_PORT)")
	cmd.Flags().String("host", "", "Bind address (default 0.0.0.0, env HOST)")
	cmd.Flags().Int("history-limit", 0, "Evaluations kept in memory (default 100, env HISTORY_LIMIT)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	s := store.New(cfg.HistoryLimit)
	server := api.New(s, logger)
	web.New(s).Register(server.App())

	grpcServer := grpcapi.New(s, logger)
	go func() {
		logger.Info("gRPC server listening", zap.String("addr", cfg.GRPCAddr()))
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			logger.Fatal("gRPC server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		grpcServer.GracefulStop()
		if err := server.Shutdown(); err != nil {
			logger.Error("error during shutdown", zap.Error(err))
		}
	}()

	logger.Info("numcalc listening",
		zap.String("addr", cfg.Addr()),
		zap.Int("historyLimit", cfg.HistoryLimit))
	return server.Listen(cfg.Addr())
}
