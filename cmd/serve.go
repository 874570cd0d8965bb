package cmd

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bimmills/portal/auth"
	"github.com/bimmills/portal/db"
	_ "github.com/bimmills/portal/docs"
	"github.com/bimmills/portal/handlers"
	"github.com/bimmills/portal/mail"
	"github.com/bimmills/portal/service"
	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(cfg.Database)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to open database")
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, cfg.Database.Driver); err != nil {
		return pkgerrors.Wrap(err, "failed to run migrations")
	}
	if cfg.Seed.Catalogue {
		n, err := db.SeedCatalogue(ctx, database)
		if err != nil {
			return pkgerrors.Wrap(err, "failed to seed catalogue")
		}
		if n > 0 {
			slog.Info("catalogue seeded", "fabrics", n)
		}
	}

	client, err := mail.NewClient(cfg.Mail)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to configure mail")
	}
	dispatcher := mail.NewDispatcher(client, cfg.Mail.From, cfg.Mail.QueueSize, cfg.Mail.Workers, cfg.Mail.SendTimeout)
	notifier := mail.NewNotifier(dispatcher, cfg.Mail)

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		secret, err = randomSecret()
		if err != nil {
			return err
		}
		slog.Warn("auth.jwt_secret is not set, using a random secret; tokens will not survive a restart")
	}

	h := handlers.New(handlers.Deps{
		DB:           database,
		Orders:       service.NewOrders(database, notifier),
		Invoices:     service.NewInvoices(database),
		Sales:        service.NewSales(database),
		Mailer:       notifier,
		Tokens:       auth.NewTokens(secret, cfg.Auth.TokenTTL),
		EnforceAdmin: cfg.Auth.EnforceAdmin,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      h.Router(cfg.Server),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return pkgerrors.Wrap(err, "failed to listen")
	}
	slog.Info("server starting", "addr", ln.Addr().String(), "environment", cfg.Environment)
	return runServer(ctx, srv, ln, dispatcher, cfg.Server.ShutdownTimeout)
}

// runServer serves on ln until ctx is done, then shuts the server down. The
// mail dispatcher keeps running until in-flight requests have finished so
// their notifications are still sent.
func runServer(ctx context.Context, srv *http.Server, ln net.Listener, dispatcher *mail.Dispatcher, shutdownTimeout time.Duration) error {
	mailCtx, stopMail := context.WithCancel(context.WithoutCancel(ctx))
	defer stopMail()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return dispatcher.Run(mailCtx)
	})
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return pkgerrors.Wrap(err, "server error")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		defer stopMail()

		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", pkgerrors.Wrap(err, "generating jwt secret")
	}
	return hex.EncodeToString(b), nil
}
