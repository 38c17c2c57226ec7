package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"quillblog/app/repositories"

	"github.com/spf13/cobra"
)

func newInitCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.setup()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if exists(cfg.DBPath) {
				fmt.Fprintln(out, "Database already exists. Use 'clean' first if you want to reinitialize.")
				return nil
			}
			if err := os.MkdirAll(cfg.DBPath, 0o755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}

			store, err := repositories.Open(cfg.DBPath, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			if err := store.Close(); err != nil {
				return err
			}

			fmt.Fprintln(out, "Database initialized successfully")
			return nil
		},
	}
}

func newCleanCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if !exists(cfg.DBPath) {
				fmt.Fprintln(out, "Database is already clean (does not exist)")
				return nil
			}
			if !force && !confirm(cmd, "Are you sure you want to clean the database? This cannot be undone.") {
				fmt.Fprintln(out, "Operation cancelled")
				return nil
			}

			if err := os.RemoveAll(cfg.DBPath); err != nil {
				return fmt.Errorf("failed to clean database: %w", err)
			}
			fmt.Fprintln(out, "Database cleaned successfully")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Do not ask for confirmation")
	return cmd
}

func newBackupCmd(opts *rootOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a full backup of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.setup()
			if err != nil {
				return err
			}
			if !exists(cfg.DBPath) {
				return errors.New("no database exists to backup")
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create backup directory: %w", err)
			}

			store, err := repositories.Open(cfg.DBPath, logger)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			backupFile := filepath.Join(dir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
			f, err := os.Create(backupFile)
			if err != nil {
				return fmt.Errorf("failed to create backup file: %w", err)
			}
			defer f.Close()

			if _, err := store.DB().Backup(f, 0); err != nil {
				return fmt.Errorf("failed to backup database: %w", err)
			}
			if err := f.Sync(); err != nil {
				return fmt.Errorf("failed to flush backup file: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Database backed up successfully to %s\n", backupFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", filepath.Join("data", "backups"), "Directory for backup files")
	return cmd
}

func newRestoreCmd(opts *rootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Replace the database with a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backupFile := args[0]
			cfg, logger, err := opts.setup()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			fi, err := os.Stat(backupFile)
			if err != nil {
				return fmt.Errorf("backup file does not exist: %s", backupFile)
			}
			if fi.Size() == 0 {
				return fmt.Errorf("backup file is empty: %s", backupFile)
			}

			if exists(cfg.DBPath) {
				if !force && !confirm(cmd, "Existing database found. Do you want to replace it?") {
					fmt.Fprintln(out, "Operation cancelled")
					return nil
				}
				if err := os.RemoveAll(cfg.DBPath); err != nil {
					return fmt.Errorf("failed to remove existing database: %w", err)
				}
			}
			if err := os.MkdirAll(cfg.DBPath, 0o755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}

			store, err := repositories.Open(cfg.DBPath, logger)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			f, err := os.Open(backupFile)
			if err != nil {
				return fmt.Errorf("failed to open backup file: %w", err)
			}
			defer f.Close()

			if err := store.DB().Load(f, 4); err != nil {
				return fmt.Errorf("failed to restore database: %w", err)
			}

			fmt.Fprintln(out, "Database restored successfully")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace an existing database without asking")
	return cmd
}
