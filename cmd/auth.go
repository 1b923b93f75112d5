package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nutrisuggest/nutri/internal/api"
	"github.com/nutrisuggest/nutri/internal/appconfig"
	"github.com/nutrisuggest/nutri/internal/output"
)

var authCmd = &cobra.Command{
	Use:     "auth",
	Short:   "Manage your NutriSuggest account session",
	GroupID: "account",
}

var authLoginCmd = &cobra.Command{
	Use:               "login",
	Short:             "Log in to NutriSuggest",
	PersistentPreRunE: guardRoute("login"),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		var email, password string
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&email).
				Validate(requireValue("email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(requireValue("password")),
		))
		if err := form.Run(); err != nil {
			return err
		}

		if !a.session.Login(cmd.Context(), api.LoginCredentials{Email: email, Password: password}) {
			output.Error("%s", a.session.Err())
			return errors.New("login failed")
		}

		output.Success("Logged in as %s", a.session.User().Email)
		if !a.session.HasCompleteProfile() {
			output.Info("Your profile is incomplete; run 'nutri profile set' to unlock recommendations.")
		}
		return nil
	},
}

var authRegisterCmd = &cobra.Command{
	Use:               "register",
	Short:             "Create a NutriSuggest account",
	PersistentPreRunE: guardRoute("register"),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		var email, password, confirm string
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&email).
				Validate(requireValue("email")),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(requireValue("password")),
			huh.NewInput().
				Title("Confirm password").
				EchoMode(huh.EchoModePassword).
				Value(&confirm),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if confirm != password {
			return errors.New("passwords do not match")
		}

		data := api.RegisterData{Email: email, Password: password, ConfirmPassword: confirm}
		if !a.session.Register(cmd.Context(), data) {
			output.Error("%s", a.session.Err())
			return errors.New("registration failed")
		}

		output.Success("Account created. Logged in as %s", a.session.User().Email)
		output.Info("Run 'nutri profile set' to set up your targets.")
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		a.session.Logout()
		fmt.Println("Logged out.")
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		if !appconfig.HasToken() {
			fmt.Println("Not logged in.")
			return nil
		}

		if !a.session.CheckAuth(cmd.Context()) {
			fmt.Println("Stored token is no longer valid. Run 'nutri auth login'.")
			return nil
		}

		user := a.session.User()
		fmt.Printf("Email:   %s\n", user.Email)
		fmt.Printf("Server:  %s\n", appconfig.APIURL())
		if a.session.HasCompleteProfile() {
			fmt.Println("Profile: complete")
		} else {
			fmt.Println("Profile: incomplete (run 'nutri profile set')")
		}
		return nil
	},
}

var authDeleteAccountCmd = &cobra.Command{
	Use:   "delete-account",
	Short: "Permanently delete your account",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		if !a.session.CheckAuth(cmd.Context()) {
			return errors.New("not logged in")
		}

		var confirmed bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Delete your account?").
				Description("All logged intakes, foods and recipes are removed. This cannot be undone.").
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}

		if !a.session.DeleteAccount(cmd.Context()) {
			output.Error("%s", a.session.Err())
			return errors.New("delete account failed")
		}
		output.Success("Account deleted.")
		return nil
	},
}

func requireValue(name string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s required", name)
		}
		return nil
	}
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authDeleteAccountCmd)
	rootCmd.AddCommand(authCmd)
}
