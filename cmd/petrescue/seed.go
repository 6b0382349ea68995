package main

import (
	"PetRescue/internal/config"
	"PetRescue/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func seedCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the schema and load the pipe-delimited fixture files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer log.Sync()

			if dir == "" {
				dir = cfg.SeedDir
			}

			st, err := store.Open(cfg.Database.Driver, cfg.Database.DSN, log)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Init(cmd.Context()); err != nil {
				return err
			}
			if err := st.LoadDir(cmd.Context(), dir); err != nil {
				return err
			}
			log.Info("seed complete", zap.String("dir", dir))
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "fixture directory (default: seed_dir from config)")
	return cmd
}
