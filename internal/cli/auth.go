package cli

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tgienger/tms/internal/api"
)

type sessionOut struct {
	Username  string    `json:"username"`
	Photo     string    `json:"photo,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func newLoginCmd(app *App) *cobra.Command {
	var creds api.Credentials

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds.Email = strings.TrimSpace(creds.Email)
			if creds.Email == "" || creds.Password == "" {
				return errors.New("email and password are required")
			}
			res, err := app.client.Login(cmd.Context(), creds)
			if err != nil {
				return err
			}
			s, err := app.sessions.Set(res.Token, res.Username, res.Photo)
			if err != nil {
				return err
			}
			app.log.Info().Str("user", s.Username).Msg("signed in")
			return writeOut(cmd, app, sessionOut{Username: s.Username, Photo: s.Photo, ExpiresAt: s.ExpiresAt}, nil)
		},
	}

	cmd.Flags().StringVar(&creds.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&creds.Password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return publicCmd(cmd)
}

func newRegisterCmd(app *App) *cobra.Command {
	var reg api.Registration
	var photo string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if reg.Username == "" || reg.Email == "" || reg.Phone == "" || reg.Password == "" {
				return errors.New("username, email, phone and password are required")
			}
			if photo != "" {
				f, err := reg.PhotoFromFile(photo)
				if err != nil {
					return err
				}
				defer f.Close()
			}
			msg, err := app.client.Register(cmd.Context(), reg)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]string{"message": msg}, nil)
		},
	}

	cmd.Flags().StringVar(&reg.Username, "username", "", "Display name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&reg.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&reg.Password, "password", "", "Account password")
	cmd.Flags().StringVar(&photo, "photo", "", "Path to a profile picture")
	return publicCmd(cmd)
}

func newLogoutCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.sessions.Clear(); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]bool{"signedOut": true}, nil)
		},
	}
	return publicCmd(cmd)
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ok := app.sessions.Get()
			if !ok {
				return errNotSignedIn
			}
			return writeOut(cmd, app, sessionOut{Username: s.Username, Photo: s.Photo, ExpiresAt: s.ExpiresAt}, nil)
		},
	}
}
