package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"quillblog/app/config"
	"quillblog/app/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time with -ldflags "-X quillblog/commands.Version=...".
var Version = "dev"

type rootOptions struct {
	configPath string
	dbPath     string
}

// NewRootCmd builds the quillblog command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "quillblog",
		Short: "Quill Blog - a small publishing site with moderated comments",
		Long: `Quill Blog serves a blog whose posts start as drafts and go public when
published. Visitors may comment; comments appear once approved.

Data lives in a Badger database directory (db_path). Settings come from
quillblog.yaml in . or ./config, overridden by QUILLBLOG_* environment
variables and by the flags below.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default: search for quillblog.yaml)")
	rootCmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "Database directory (overrides db_path)")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newInitCmd(opts),
		newCleanCmd(opts),
		newBackupCmd(opts),
		newRestoreCmd(opts),
		newCreateUserCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}
	return cfg, nil
}

// setup loads the config and builds a logger for it.
func (o *rootOptions) setup() (*config.Config, *zap.Logger, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return cfg, logger, nil
}

// confirm asks a yes/no question on the command's streams. Anything but y/Y is no.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return false
	}
	answer := strings.TrimSpace(line)
	return answer == "y" || answer == "Y"
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
