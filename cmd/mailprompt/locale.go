// ABOUTME: CLI command to show or change the active locale.
// ABOUTME: The locale picks built-in preset names, UI labels, and the prompt language.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/mailprompt/internal/models"
)

var localeCmd = &cobra.Command{
	Use:       "locale [en|zh]",
	Short:     "Show or set the active locale",
	Long:      "Without an argument, print the active locale. With one, switch to it.",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(models.LocaleEnglish), string(models.LocaleChinese)},
	RunE:      runLocale,
}

func init() {
	rootCmd.AddCommand(localeCmd)
}

func runLocale(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), globalWorkspace.Locale())
		return nil
	}

	l, ok := models.ParseLocale(args[0])
	if !ok {
		return fmt.Errorf("unsupported locale %q (valid: en, zh)", args[0])
	}
	globalWorkspace.SetLocale(l)
	fmt.Fprintln(cmd.OutOrStdout(), globalWorkspace.Locale())
	return nil
}
