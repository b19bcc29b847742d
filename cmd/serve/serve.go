// Package serve runs the HTTP dashboard
package serve

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fjacquet/dre-report/cmd/common"
	"fjacquet/dre-report/cmd/root"
	"fjacquet/dre-report/internal/container"
	"fjacquet/dre-report/internal/dataset"
	"fjacquet/dre-report/internal/logging"
	"fjacquet/dre-report/internal/parsererror"
	"fjacquet/dre-report/internal/server"
	"fjacquet/dre-report/internal/viewstate"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interactive dashboard over HTTP",
	Long: `Serve the dashboard page with upload, store and account filters, charts
and export links. The working set starts from --input or the stored dataset.
With server.reload_interval set, the stored dataset is re-read periodically.

Example:
  dre-report serve --addr :8080`,
	RunE: serveFunc,
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from server.addr)")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return Serve(ctx, root.GetContainer(), addr, root.SharedFlags.Input)
}

// Serve preloads the working set and runs the server until ctx is done.
func Serve(ctx context.Context, c *container.Container, listen, input string) error {
	if c == nil {
		return common.ErrNoContainer
	}
	logger := c.GetLogger()
	if listen == "" {
		listen = c.GetConfig().Server.Addr
	}

	session := viewstate.NewSession()
	ds, err := common.LoadDataset(ctx, c, input)
	switch {
	case err == nil:
		session.Replace(ds.Records)
	case errors.Is(err, parsererror.ErrEmptyUpload):
		logger.Info("Starting without data, waiting for an upload")
	default:
		return err
	}

	srv, err := server.NewServer(server.Options{
		Addr:       listen,
		Aggregator: c.AggregatorOptions(),
		Export:     c.ExportOptions(),
		ExportFile: c.GetConfig().Export.FileName,
	}, c.GetDatasets(), session, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	if interval := c.GetConfig().Server.ReloadInterval; interval > 0 && c.GetDatasets().HasStore() {
		g.Go(func() error {
			return refreshFromStore(gctx, c.GetDatasets(), session, interval, logger)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Dashboard server stopping", logging.F(logging.FieldAddr, listen))
		return nil
	})
	return g.Wait()
}

// refreshFromStore replaces the working set with the stored dataset every
// interval, so writes by other clients of a shared store reach the page. An
// empty or unreadable store keeps the current working set.
func refreshFromStore(ctx context.Context, datasets *dataset.Service, session *viewstate.Session, interval time.Duration, logger logging.Logger) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			ds, err := datasets.LoadFromStore(ctx)
			if err != nil {
				continue
			}
			session.Replace(ds.Records)
			logger.Debug("Working set refreshed from store", logging.F(logging.FieldCount, len(ds.Records)))
		}
	}
}
