package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tbourn/krishi-mitra/internal/enrich"
	"github.com/tbourn/krishi-mitra/internal/stores"
)

// Opener builds the App for one command invocation. The returned function
// releases its resources.
type Opener func(ctx context.Context, out io.Writer) (*App, func(), error)

type appKey struct{}

// NewRootCommand returns the krishi command tree. Every subcommand receives
// the App built by open in its PersistentPreRunE.
func NewRootCommand(version string, open Opener) *cobra.Command {
	var release func()

	root := &cobra.Command{
		Use:   "krishi",
		Short: "Krishi Mitra - crop advice for farmers in the terminal",
		Long: `krishi talks to the Krishi Mitra advisory server.

Start a conversation with the crop doctor, keep a local history, check
reference market prices and post sale listings.

Examples:
  krishi                     # same as krishi chat
  krishi login --phone 9847012345 --password secret
  krishi lang ml
  krishi prices tomato
  krishi tips rice`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			app, closeFn, err := open(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			release = closeFn
			cmd.SetContext(context.WithValue(cmd.Context(), appKey{}, app))
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if release != nil {
				release()
			}
		},
		RunE: runChat,
	}

	root.AddCommand(
		&cobra.Command{Use: "chat", Short: "Talk to the crop doctor", Args: cobra.NoArgs, RunE: runChat},
		loginCmd(),
		signupCmd(),
		&cobra.Command{Use: "logout", Short: "Forget the signed-in profile", Args: cobra.NoArgs, RunE: runLogout},
		&cobra.Command{Use: "whoami", Short: "Show the signed-in profile", Args: cobra.NoArgs, RunE: runWhoami},
		&cobra.Command{Use: "lang [en|ml|toggle]", Short: "Show or change the language", Args: cobra.MaximumNArgs(1), RunE: runLang},
		&cobra.Command{Use: "history [id]", Short: "List saved conversations or show one", Args: cobra.MaximumNArgs(1), RunE: runHistory},
		&cobra.Command{Use: "prices [crop]", Short: "Reference market prices (INR per quintal)", RunE: runPrices},
		&cobra.Command{Use: "tips [query]", Short: "Crop tips and government schemes", RunE: runTips},
		weatherCmd(),
		assistCmd(),
	)
	return root
}

func appFrom(cmd *cobra.Command) (*App, error) {
	app, ok := cmd.Context().Value(appKey{}).(*App)
	if !ok {
		return nil, errors.New("client not initialised")
	}
	return app, nil
}

func runChat(cmd *cobra.Command, _ []string) error {
	app, err := appFrom(cmd)
	if err != nil {
		return err
	}
	return app.Chat(cmd.Context(), cmd.InOrStdin())
}

func loginCmd() *cobra.Command {
	var form stores.LoginForm
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in (demo mode: any phone and password)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if _, err := app.Identity.Login(cmd.Context(), form); err != nil {
				return err
			}
			app.ShowProfile()
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&form.Password, "password", "", "Password")
	return cmd
}

func signupCmd() *cobra.Command {
	var form stores.SignupForm
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a local farmer profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if _, err := app.Identity.Signup(cmd.Context(), form); err != nil {
				return err
			}
			app.ShowProfile()
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.Phone, "phone", "", "Phone number")
	f.StringVar(&form.Password, "password", "", "Password")
	f.StringVar(&form.Location, "location", "", "Village/town, state (default "+stores.DefaultLocation+")")
	f.StringVar(&form.Crops, "crops", "", "Comma separated crops, e.g. \"Rice, Coconut\"")
	f.StringVar(&form.History, "history", "", "Farming history notes")
	return cmd
}

func runLogout(cmd *cobra.Command, _ []string) error {
	app, err := appFrom(cmd)
	if err != nil {
		return err
	}
	if err := app.Identity.Logout(cmd.Context()); err != nil {
		return err
	}
	app.printf("Signed out.\n")
	return nil
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	app, err := appFrom(cmd)
	if err != nil {
		return err
	}
	app.ShowProfile()
	return nil
}

func runLang(cmd *cobra.Command, args []string) error {
	app, err := appFrom(cmd)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		app.printf("%s\n", app.Lang.Get())
		return nil
	}
	lang, err := app.SetLanguage(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	app.printf("%s\n", lang)
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	app, err := appFrom(cmd)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		return app.ShowConversation(cmd.Context(), args[0])
	}
	return app.ShowHistory(cmd.Context())
}

func runPrices(cmd *cobra.Command, args []string) error {
	app, err := appFrom(cmd)
	if err != nil {
		return err
	}
	app.ShowPrices(strings.Join(args, " "))
	return nil
}

func runTips(cmd *cobra.Command, args []string) error {
	app, err := appFrom(cmd)
	if err != nil {
		return err
	}
	if app.API == nil {
		return errors.New("server API is not configured")
	}
	res, err := app.API.Suggestions(cmd.Context(), app.Lang.Get(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(args) > 0 {
		if len(res.Results) == 0 {
			app.printf("No matches.\n")
		}
		for _, h := range res.Results {
			app.printf("%-7s %s\n        %s\n", h.Kind, h.Title, preview(h.Snippet))
		}
		return nil
	}
	app.printf("%s\n", res.Headings.CropAdvice)
	for _, t := range res.Tips {
		app.printf("  %s: %s\n", t.Title, t.Description)
	}
	app.printf("%s\n", res.Headings.GovSchemes)
	for _, s := range res.Schemes {
		app.printf("  %s: %s\n", s.Title, s.Description)
	}
	if res.Soil != "" {
		app.printf("%s\n  %s\n", res.Headings.SoilHealth, res.Soil)
	}
	return nil
}

func weatherCmd() *cobra.Command {
	var lat, lon float64
	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Location and current weather for coordinates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if !enrich.ValidCoordinates(lat, lon) {
				return fmt.Errorf("invalid coordinates %v,%v", lat, lon)
			}
			if app.API == nil {
				return errors.New("server API is not configured")
			}
			c, err := app.API.Context(cmd.Context(), lat, lon)
			if err != nil {
				return err
			}
			label := c.Location.Label
			if label == "" {
				label = fmt.Sprintf("%.4f, %.4f", c.Location.Lat, c.Location.Lon)
			}
			app.printf("%s\n", label)
			if w := c.Weather; w != nil {
				sky := "cloudy"
				if w.Clear() {
					sky = "clear"
				}
				app.printf("%.1f°C, wind %.1f km/h, %s\n", w.Temperature, w.WindSpeed, sky)
			} else {
				app.printf("Weather unavailable.\n")
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&lat, "lat", 23.8315, "Latitude")
	cmd.Flags().Float64Var(&lon, "lon", 91.2868, "Longitude")
	return cmd
}

func assistCmd() *cobra.Command {
	var phone, issue string
	cmd := &cobra.Command{
		Use:   "assist",
		Short: "Ask an agricultural officer to call you back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := appFrom(cmd)
			if err != nil {
				return err
			}
			if app.API == nil {
				return errors.New("server API is not configured")
			}
			if phone == "" {
				if u, ok := app.Identity.Current(); ok {
					phone = u.Phone
				}
			}
			req, err := app.API.RequestAssistance(cmd.Context(), phone, issue, app.Lang.Get())
			if err != nil {
				return err
			}
			app.printf("Request %s filed. An officer will call %s.\n", req.ID, req.Phone)
			return nil
		},
	}
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number (defaults to the signed-in profile)")
	cmd.Flags().StringVar(&issue, "issue", "", "Describe the problem")
	return cmd
}
