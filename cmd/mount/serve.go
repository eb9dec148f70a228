package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/mount/pkg/preview"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port      int
		host      string
		document  string
		container string
		text      bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the live preview server",
		Long: `Serve a document and mount elements into it over HTTP.

Connected browsers receive every mounted element over a WebSocket.

Routes:
  GET  /            live document
  POST /mount       mount a JSON descriptor (?container=selector)
  GET  /document    document HTML
  GET  /metrics     Prometheus metrics

Examples:
  mount serve
  mount serve --port=8080 --document index.html
  curl -X POST localhost:3000/mount -d '{"tag":"p","content":"hello"}'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if container != "" {
				cfg.Container = container
			}
			if document == "" {
				document = cfg.DocumentPath()
			}

			doc, err := loadDocument(document)
			if err != nil {
				return err
			}

			logger := newLogger(cfg, flags.verbose, cmd.ErrOrStderr())
			reg := prometheus.NewRegistry()
			renderer, err := newRenderer(cfg, text, logger, reg)
			if err != nil {
				return err
			}

			srv := preview.New(preview.Config{
				Document:  doc,
				Container: cfg.Container,
				Renderer:  renderer,
				Gatherer:  reg,
				Logger:    logger,
			})

			w := cmd.OutOrStdout()
			printBanner(w)
			fmt.Fprintln(w, "  serve")
			fmt.Fprintln(w)
			info(w, "Local:     %s", cfg.URL())
			info(w, "Container: %s", cfg.Container)
			fmt.Fprintln(w)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ListenAndServe(ctx, cfg.Address()); err != nil {
				return err
			}
			success(w, "Server stopped")
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from mount.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from mount.json)")
	cmd.Flags().StringVarP(&document, "document", "d", "", "HTML document to serve (default blank)")
	cmd.Flags().StringVar(&container, "container", "", "Default container selector")
	cmd.Flags().BoolVar(&text, "text", false, "Assign content as escaped text instead of markup")

	return cmd
}
