package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/voxpense/vocal/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long:  `Serve the voice pipeline over HTTP: POST /api/v1/voice accepts audio or text.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			addr, _ := cmd.Flags().GetString("addr")

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			logger := slog.Default()
			eng, err := buildEngine(store, logger)
			if err != nil {
				return err
			}

			return server.New(eng, logger).Run(ctx, addr)
		},
	}

	cmd.Flags().String("addr", ":8080", "listen address")

	return cmd
}
