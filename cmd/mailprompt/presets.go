// ABOUTME: CLI commands for tone preset management.
// ABOUTME: Provides list, add, and remove subcommands.
package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/mailprompt/internal/models"
	"github.com/2389-research/mailprompt/internal/presets"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage tone presets",
	Long:  "List built-in and custom tone presets, add new ones, or remove custom ones.",
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tone presets",
	Long:  "List the built-in presets for a locale followed by every custom preset. The selected preset is marked with *.",
	RunE:  runPresetsList,
}

var presetsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a custom tone preset",
	Long:  "Create a custom tone preset and select it.",
	RunE:  runPresetsAdd,
}

var presetsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a custom tone preset",
	Long:  "Delete a custom tone preset. Built-in presets cannot be removed.",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetsRemove,
}

// Flags
var (
	presetsLocale     string
	presetName        string
	presetInstruction string
)

func init() {
	rootCmd.AddCommand(presetsCmd)
	presetsCmd.AddCommand(presetsListCmd)
	presetsCmd.AddCommand(presetsAddCmd)
	presetsCmd.AddCommand(presetsRemoveCmd)

	presetsListCmd.Flags().StringVar(&presetsLocale, "locale", "", "Locale for built-in names: en or zh (default: active locale)")

	presetsAddCmd.Flags().StringVar(&presetName, "name", "", "Preset name")
	presetsAddCmd.Flags().StringVar(&presetInstruction, "instruction", "", "Tone instruction")
	_ = presetsAddCmd.MarkFlagRequired("name")
	_ = presetsAddCmd.MarkFlagRequired("instruction")
}

func runPresetsList(cmd *cobra.Command, args []string) error {
	locale := globalWorkspace.Locale()
	if presetsLocale != "" {
		l, ok := models.ParseLocale(presetsLocale)
		if !ok {
			return fmt.Errorf("unsupported locale %q (valid: en, zh)", presetsLocale)
		}
		locale = l
	}

	selected := globalWorkspace.Session().SelectedPresetID
	out := cmd.OutOrStdout()
	for _, p := range globalWorkspace.PresetsForLocale(locale) {
		marker := " "
		if p.ID == selected {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %-14s %-8s %s\n", marker, p.ID, p.Kind, p.Name)
	}
	return nil
}

func runPresetsAdd(cmd *cobra.Command, args []string) error {
	p, err := globalWorkspace.AddPreset(presetName, presetInstruction)
	if errors.Is(err, presets.ErrBlankField) {
		return fmt.Errorf("--name and --instruction must not be blank")
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) and selected it.\n", p.Name, p.ID)
	return nil
}

func runPresetsRemove(cmd *cobra.Command, args []string) error {
	id := args[0]
	if presets.IsBuiltinID(id) {
		return fmt.Errorf("%q is a built-in preset and cannot be removed", id)
	}
	if !globalWorkspace.RemovePreset(id) {
		return fmt.Errorf("no custom preset with id %q", id)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s. Selected: %s\n", id, globalWorkspace.Session().SelectedPresetID)
	return nil
}
