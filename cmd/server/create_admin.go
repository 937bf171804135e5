package main

import (
	"context"
	"errors"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shrey-c/BookRecommender/internal/auth"
	"github.com/shrey-c/BookRecommender/internal/config"
	"github.com/shrey-c/BookRecommender/internal/db"
	"github.com/shrey-c/BookRecommender/internal/logging"
	"github.com/shrey-c/BookRecommender/repository"
)

func newCreateAdminCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Seed the librarian account the admin gate is configured for",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadWithDefaults()
			if err != nil {
				return err
			}
			if email == "" {
				email = cfg.Auth.AdminEmail
			}
			if password == "" {
				password, err = readPassword("Admin password: ")
				if err != nil {
					return err
				}
			}
			if password == "" {
				return errors.New("password must not be empty")
			}

			d, err := db.Open(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer d.Close()

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			u, err := repository.NewUserRepository(d).Create(context.Background(), email, hash, nil, nil)
			if errors.Is(err, repository.ErrDuplicate) {
				return fmt.Errorf("account %s already exists", email)
			} else if err != nil {
				return err
			}
			logging.Info().Str("email", u.Email).Msg("admin account created")
			if email != cfg.Auth.AdminEmail {
				logging.Warn().Str("email", email).Str("configured", cfg.Auth.AdminEmail).
					Msg("created account does not match ADMIN_EMAIL; the admin gate will reject it")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email (default: configured ADMIN_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "admin password (prompted when omitted)")
	return cmd
}

// readPassword reads a password from the terminal without echoing it.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
