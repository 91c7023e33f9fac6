package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/ledgermap/internal/api"
	"github.com/cleared-dev/ledgermap/internal/model"
)

func newServeCommand() *cobra.Command {
	var repoDir, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the classification API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(repoDir)
			if err != nil {
				return err
			}
			primary, err := ws.loadRules(model.VariantPrimary)
			if err != nil {
				return err
			}
			comparison, err := ws.loadRules(model.VariantComparison)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = ws.cfg.Server.Addr
			}

			srv := &http.Server{
				Addr: addr,
				Handler: api.NewRouter(api.Options{
					Primary:    primary,
					Comparison: comparison,
					Config:     ws.agg,
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdown)
			}()

			logrus.WithField("addr", addr).Warn("listening; API base /api/v1")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	addRepoFlag(cmd, &repoDir)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default server.addr)")
	return cmd
}
