package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"mini-orm/core/database"
	"mini-orm/core/loader"
	"mini-orm/core/metrics"
	"mini-orm/core/server"
	"mini-orm/feature/hr"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "mini-orm/docs/swagger"
)

// @title Mini ORM API
// @version 1.0
// @description HR sample data served through the change-tracking ORM.
// @host localhost:8080
// @BasePath /

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HR data over HTTP",
	Long:  `Starts the HTTP server with health, metrics and hr routes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := setup()
		if err != nil {
			return err
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		conn, err := database.Open(cfg.Database)
		if err != nil {
			return err
		}
		defer conn.Close()
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

		var m *metrics.Collector
		if cfg.Metrics.Enabled {
			m = metrics.New(cfg.Metrics.Namespace)
		}

		mgr := loader.NewManager()
		mgr.Register(hr.NewFeature(conn, logg, m))

		app, err := server.New(server.Options{
			Config:   cfg.Server,
			Logger:   logg,
			Metrics:  m,
			Features: mgr,
		})
		if err != nil {
			return err
		}

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
