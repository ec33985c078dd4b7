package main

import (
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/voxpense/vocal/internal/engine"
)

func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process [audio-file]",
		Short: "Process one voice note into expenses",
		Long: `Process a recorded voice note (or a pre-transcribed --text string)
through the full pipeline and print the result as JSON.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			text, _ := cmd.Flags().GetString("text")
			dateFlag, _ := cmd.Flags().GetString("date")

			if text == "" && len(args) == 0 {
				return fmt.Errorf("provide an audio file or --text")
			}

			var date time.Time
			if dateFlag != "" {
				parsed, err := time.Parse("2006-01-02", dateFlag)
				if err != nil {
					return fmt.Errorf("date must be in YYYY-MM-DD format: %w", err)
				}
				date = parsed
			}

			req := engine.Request{
				UserID: viper.GetString("user"),
				Text:   text,
				Date:   date,
			}

			if text == "" {
				audio, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("failed to read audio file: %w", err)
				}
				req.Audio = audio
				req.MimeType = mime.TypeByExtension(filepath.Ext(args[0]))
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			eng, err := buildEngine(store, nil)
			if err != nil {
				return err
			}

			result, err := eng.ProcessVoice(ctx, req)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode result: %w", err)
			}
			fmt.Println(string(out))

			return nil
		},
	}

	cmd.Flags().String("text", "", "process pre-transcribed text instead of audio")
	cmd.Flags().String("date", "", "expense date (YYYY-MM-DD, default: today)")

	return cmd
}
