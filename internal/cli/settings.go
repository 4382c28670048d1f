package cli

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/existflow/ironboard/internal/model"
	"github.com/existflow/ironboard/internal/store"
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change display settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(func(st *store.Store) error {
				a.printSettings(st.Snapshot().Settings)
				return nil
			})
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the current settings",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withStore(func(st *store.Store) error {
					a.printSettings(st.Snapshot().Settings)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "dark-mode",
			Short: "Toggle dark mode",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withStore(func(st *store.Store) error {
					if err := st.Dispatch(store.ToggleDarkMode{}); err != nil {
						return fmt.Errorf("failed to toggle dark mode: %w", err)
					}
					if st.Snapshot().Settings.DarkMode {
						a.println("🌙 Dark mode on")
					} else {
						a.println("☀️  Dark mode off")
					}
					return nil
				})
			},
		},
		newSettingsThemeCmd(a),
		&cobra.Command{
			Use:   "reset-theme",
			Short: "Restore the default theme colours",
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withStore(func(st *store.Store) error {
					if err := st.Dispatch(store.ResetThemeColors{}); err != nil {
						return fmt.Errorf("failed to reset theme: %w", err)
					}
					a.println("✓ Theme colours reset")
					return nil
				})
			},
		},
	)
	return cmd
}

func newSettingsThemeCmd(a *app) *cobra.Command {
	var colors model.ThemeColors

	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Change one or more theme colours",
		Long: `Change one or more theme colours. Colours not given are kept.

Examples:
  ironboard settings theme --rosewater "#f5c2e7"
  ironboard settings theme --coffee-pot-dark "#1e1e2e" --coffee-pot-light "#585b70"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch model.ThemeColorsPatch
			flags := []struct {
				name  string
				value *string
				dst   **string
			}{
				{"rosewater", &colors.Rosewater, &patch.Rosewater},
				{"dusty-rose", &colors.DustyRose, &patch.DustyRose},
				{"coffee-pot-light", &colors.CoffeePotLight, &patch.CoffeePotLight},
				{"coffee-pot-dark", &colors.CoffeePotDark, &patch.CoffeePotDark},
			}
			changed := 0
			for _, f := range flags {
				if !cmd.Flags().Changed(f.name) {
					continue
				}
				if !hexColor.MatchString(*f.value) {
					return fmt.Errorf("invalid colour %q for --%s (want #rgb or #rrggbb)", *f.value, f.name)
				}
				*f.dst = f.value
				changed++
			}
			if changed == 0 {
				return fmt.Errorf("nothing to change: pass at least one colour flag")
			}

			return a.withStore(func(st *store.Store) error {
				if err := st.Dispatch(store.UpdateThemeColors{Colors: patch}); err != nil {
					return fmt.Errorf("failed to update theme: %w", err)
				}
				a.printSettings(st.Snapshot().Settings)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&colors.Rosewater, "rosewater", "", "Accent colour")
	cmd.Flags().StringVar(&colors.DustyRose, "dusty-rose", "", "Secondary accent colour")
	cmd.Flags().StringVar(&colors.CoffeePotLight, "coffee-pot-light", "", "Muted text colour")
	cmd.Flags().StringVar(&colors.CoffeePotDark, "coffee-pot-dark", "", "Text colour")
	return cmd
}

func (a *app) printSettings(s model.Settings) {
	mode := "off"
	if s.DarkMode {
		mode = "on"
	}
	a.printf("Dark mode:         %s\n", mode)
	a.printf("Rosewater:         %s\n", s.ThemeColors.Rosewater)
	a.printf("Dusty rose:        %s\n", s.ThemeColors.DustyRose)
	a.printf("Coffee pot light:  %s\n", s.ThemeColors.CoffeePotLight)
	a.printf("Coffee pot dark:   %s\n", s.ThemeColors.CoffeePotDark)
}
