// ABOUTME: Non-interactive prompt command for scripts and pipelines.
// ABOUTME: Builds the prompt from flags, falling back to the saved session; never persists.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/2389-research/mailprompt/internal/models"
	"github.com/2389-research/mailprompt/internal/prompt"
	"github.com/2389-research/mailprompt/internal/workspace"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Print a prompt without opening the form",
	Long: `Build a prompt from flags and print it to stdout.

Any flag left unset falls back to the value saved by the interactive form.
Use --history-file - to read the email thread from stdin.`,
	RunE: runPrompt,
}

// Flags
var (
	promptHistory     string
	promptHistoryFile string
	promptIntent      string
	promptStyle       string
	promptLocale      string
	promptCopy        bool
	promptTokens      bool
)

func init() {
	rootCmd.AddCommand(promptCmd)

	promptCmd.Flags().StringVar(&promptHistory, "history", "", "Email history / context")
	promptCmd.Flags().StringVar(&promptHistoryFile, "history-file", "", "Read email history from a file (- for stdin)")
	promptCmd.Flags().StringVar(&promptIntent, "intent", "", "What the reply needs to say")
	promptCmd.Flags().StringVar(&promptStyle, "style", "", "Preset id (see 'mailprompt presets list')")
	promptCmd.Flags().StringVar(&promptLocale, "locale", "", "Prompt language: en or zh")
	promptCmd.Flags().BoolVar(&promptCopy, "copy", false, "Also copy the prompt to the clipboard")
	promptCmd.Flags().BoolVar(&promptTokens, "tokens", false, "Print the token estimate to stderr")
	promptCmd.MarkFlagsMutuallyExclusive("history", "history-file")
}

func runPrompt(cmd *cobra.Command, args []string) error {
	overrides := promptOverrides{}
	flags := cmd.Flags()
	if flags.Changed("history") {
		overrides.history = &promptHistory
	}
	if flags.Changed("history-file") {
		text, err := readHistory(promptHistoryFile, cmd.InOrStdin())
		if err != nil {
			return err
		}
		overrides.history = &text
	}
	if flags.Changed("intent") {
		overrides.intent = &promptIntent
	}
	if flags.Changed("style") {
		overrides.style = &promptStyle
	}
	if flags.Changed("locale") {
		overrides.locale = &promptLocale
	}

	text, err := buildPrompt(globalWorkspace, overrides)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), text)
	if promptTokens {
		fmt.Fprintf(cmd.ErrOrStderr(), "~%d tokens\n", prompt.EstimateTokens(text))
	}
	if promptCopy {
		if err := clipboard.WriteAll(text); err != nil {
			globalLogger.Warn("clipboard write failed", zap.Error(err))
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Copied!")
	}
	return nil
}

// promptOverrides holds the flags the user actually set.
type promptOverrides struct {
	history *string
	intent  *string
	style   *string
	locale  *string
}

// buildPrompt derives a prompt from the saved session with overrides applied.
func buildPrompt(ws *workspace.Workspace, o promptOverrides) (string, error) {
	in := ws.Input()
	if o.locale != nil {
		l, ok := models.ParseLocale(*o.locale)
		if !ok {
			return "", fmt.Errorf("unsupported locale %q (valid: en, zh)", *o.locale)
		}
		in.Locale = l
	}
	if o.history != nil {
		in.History = *o.history
	}
	if o.intent != nil {
		in.Intent = *o.intent
	}
	if o.style != nil {
		if _, ok := models.FindPreset(ws.PresetsForLocale(in.Locale), *o.style); !ok {
			return "", fmt.Errorf("unknown style %q", *o.style)
		}
		in.PresetID = *o.style
	}

	text := ws.DeriveInput(in)
	if text == "" {
		return "", fmt.Errorf("nothing to build: history and intent are both empty")
	}
	return text, nil
}

func readHistory(path string, stdin io.Reader) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read history file: %w", err)
	}
	return string(data), nil
}
