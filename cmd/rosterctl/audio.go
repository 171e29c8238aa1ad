package main

import (
	"fmt"

	"github.com/gimhantharuke456/policeappbackend/internal/adapters/storage"
	"github.com/gimhantharuke456/policeappbackend/internal/core/services"

	"github.com/spf13/cobra"
)

func audioCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audio",
		Short: "Manage voice record tracks",
	}
	cmd.AddCommand(audioSyncCommand(a))
	return cmd
}

func audioSyncCommand(a *app) *cobra.Command {
	var sourceDir string
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Upload new voice records to the track store once",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.Open(cmd.Context(), a.cfg.Storage)
			if err != nil {
				return err
			}
			defer store.Close()

			dir := a.cfg.AudioSync.SourceDir
			if sourceDir != "" {
				dir = sourceDir
			}

			result, err := services.NewAudioSyncService(dir, store, a.cfg.Storage.TracksPrefix, "").Sync(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %d, skipped %d, failed %d\n",
				result.Uploaded, result.Skipped, result.Failed)
			return nil
		},
	}
	cmd.Flags().StringVar(&sourceDir, "source", "", "directory to sync (default VOICE_RECORDS_DIR)")
	return cmd
}
