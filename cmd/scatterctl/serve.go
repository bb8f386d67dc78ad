package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/phanxgames/scatter"
	"github.com/phanxgames/scatter/remote"
	"github.com/spf13/cobra"
)

var (
	serveAddr string
	serveTPS  int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a headless stage fed by websocket clients",
	RunE:  serve,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address; clients connect to ws://<addr>/input")
	serveCmd.Flags().IntVar(&serveTPS, "tps", 60, "stage updates per second")
}

func serve(cmd *cobra.Command, args []string) error {
	if serveTPS <= 0 {
		return errors.New("serve: --tps must be positive")
	}
	stage, _, err := loadScene(scatter.SystemClock)
	if err != nil {
		return err
	}
	logTransforms(stage, slog.LevelInfo)

	src := remote.NewSource(remote.Config{Capabilities: scatter.CapPointer | scatter.CapTouch})
	stage.SetSource(src)

	mux := http.NewServeMux()
	mux.Handle("/input", src)
	srv := &http.Server{Addr: serveAddr, Handler: mux}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		scatter.Logger().Info("serving", "addr", serveAddr)
		errc <- srv.ListenAndServe()
	}()

	ticker := time.NewTicker(time.Second / time.Duration(serveTPS))
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			stage.Update()
		case err := <-errc:
			return err
		case <-ctx.Done():
			src.Close()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	}
}
