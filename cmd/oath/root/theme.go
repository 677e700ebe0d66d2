package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tennisoath/internal/storage"
	"tennisoath/internal/ui"
)

func newThemeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "theme [light|dark]",
		Short:     "Show or set the color theme",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(storage.ThemeLight), string(storage.ThemeDark)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := a.openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				t, err := s.themes.Get(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, ui.LabelValue("Theme", t))
				return nil
			}

			t := storage.Theme(args[0])
			if err := s.themes.Set(ctx, t); err != nil {
				return err
			}
			ui.UseTheme(t == storage.ThemeDark)
			fmt.Fprintln(out, ui.Good.Render(ui.IconCheck+" Theme: "+string(t)))
			return nil
		},
	}
	return cmd
}
