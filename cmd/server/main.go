// Command server runs the employee directory HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"employee-api/internal/config"
	"employee-api/internal/httpapi"
	"employee-api/internal/logging"
	"employee-api/internal/service"
	"employee-api/internal/store"
)

func main() {
	app := cli.NewApp()
	app.Name = "employee-api"
	app.Usage = "serve the employee directory REST API"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "config",
			Usage:  "YAML configuration file",
			EnvVar: "CONFIG_FILE",
		},
		cli.StringFlag{
			Name:  "env-file",
			Usage: "dotenv file loaded before reading the environment",
			Value: ".env",
		},
	}
	app.HideVersion = true
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("server failed")
	}
}

func run(c *cli.Context) error {
	if err := godotenv.Load(c.String("env-file")); err != nil {
		logrus.WithError(err).Debug("no dotenv file loaded, using process environment")
	}

	// -- Configs preload --
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	// -- Logger --
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	// -- Store --
	employees, err := store.Open(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	employeeService := service.NewEmployeeService(employees, logger)
	if cfg.SeedData {
		if err := employeeService.Seed(ctx); err != nil {
			return err
		}
	}

	// -- Router --
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           httpapi.NewRouter(employeeService, logger, registry),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// -- Startup --
	logger.WithFields(logrus.Fields{
		"addr":   server.Addr,
		"driver": cfg.DBDriver,
	}).Info("starting server")
	return runServer(ctx, server)
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
