package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSettingsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Show the provider configuration with the API key masked",
		Args:  cobra.NoArgs,
		RunE: c.withApp(func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			s := c.app.Chat.Settings()

			baseURL := s.BaseURL
			if baseURL == "" {
				baseURL = dateStyle.Render("(default) " + s.Provider.Endpoint())
			}

			apiKey := s.MaskedAPIKey()
			if apiKey == "" {
				apiKey = errorStyle.Render("not set")
			}

			fmt.Fprintln(out, headerStyle.Render("Settings"))
			fmt.Fprintf(out, "%s%s\n", labelStyle.Render("provider"), titleStyle.Render(string(s.Provider)))
			fmt.Fprintf(out, "%s%s\n", labelStyle.Render("model"), s.ModelName)
			fmt.Fprintf(out, "%s%s\n", labelStyle.Render("base url"), baseURL)
			fmt.Fprintf(out, "%s%s\n", labelStyle.Render("api key"), apiKey)
			return nil
		}),
	}
}
