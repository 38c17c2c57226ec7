package commands

import (
	"errors"
	"fmt"
	"sort"

	"quillblog/app/repositories"
	"quillblog/app/services"

	"github.com/spf13/cobra"
)

func newCreateUserCmd(opts *rootOptions) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "createuser",
		Short: "Create an editor account",
		Long: `Create an account that can write, publish and delete posts and
moderate comments. Accounts can only be created from the command line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.setup()
			if err != nil {
				return err
			}

			store, err := repositories.Open(cfg.DBPath, logger)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			user, err := services.NewUserService(store.Users).CreateUser(username, password)
			var verr *services.ValidationError
			if errors.As(err, &verr) {
				fields := make([]string, 0, len(verr.Fields))
				for field := range verr.Fields {
					fields = append(fields, field)
				}
				sort.Strings(fields)
				for _, field := range fields {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, verr.Fields[field])
				}
				return errors.New("user not created")
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "User %q created with id %d\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Login name (3 to 150 characters, no spaces)")
	cmd.Flags().StringVar(&password, "password", "", "Password (at least 8 characters)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "quillblog %s\n", Version)
		},
	}
}
