package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/deepikaoppangi/lbg-financial-overview/internal/app"
	"github.com/deepikaoppangi/lbg-financial-overview/internal/config"
	"github.com/deepikaoppangi/lbg-financial-overview/internal/models"
	"github.com/deepikaoppangi/lbg-financial-overview/internal/repository"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply Postgres migrations",
	RunE:  runMigrate,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy every profile from the data directory into Postgres",
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCmd)
}

func postgresConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	if cfg.ProfileBackend != config.BackendPostgres || cfg.DBConn == "" {
		return nil, errors.New("this command requires PROFILE_BACKEND=postgres and DB_CONN")
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	return cfg, nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := postgresConfig()
	if err != nil {
		return err
	}
	db, err := app.OpenDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repository.RunMigrations(db); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
	return nil
}

func runImport(cmd *cobra.Command, _ []string) error {
	cfg, err := postgresConfig()
	if err != nil {
		return err
	}
	db, err := app.OpenDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := repository.RunMigrations(db); err != nil {
		return err
	}

	n, err := importProfiles(cmd.Context(), repository.NewFileStore(cfg.DataDir), repository.NewPostgresStore(db))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d profiles\n", n)
	return nil
}

type profileSaver interface {
	Save(ctx context.Context, p *models.Profile) error
}

// importProfiles copies every listed profile from src to dst
func importProfiles(ctx context.Context, src repository.ProfileStore, dst profileSaver) (int, error) {
	infos, err := src.List(ctx)
	if err != nil {
		return 0, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, info := range infos {
		g.Go(func() error {
			p, err := src.Load(gctx, info.ID)
			if err != nil {
				return fmt.Errorf("load %s: %w", info.ID, err)
			}
			if p.Name == "" {
				p.Name = info.Name
			}
			return dst.Save(gctx, p)
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(infos), nil
}
