package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tennisoath/internal/engine"
	"tennisoath/internal/ui"
)

func newSwitchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "switch <player|parent>",
		Short: "Switch the active role (clears acknowledgments)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			role, err := engine.ParseRole(args[0])
			if err != nil {
				return err
			}
			s, cleanup, err := a.openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			prev, had := s.tracker.CurrentRole()
			if _, err := s.tracker.SwitchRole(ctx, role); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if had && prev == role {
				fmt.Fprintln(out, ui.Muted.Render("Already "+role.Badge()+"."))
				return nil
			}
			fmt.Fprintln(out, ui.Good.Render(ui.IconCheck+" Switched to "+role.Badge()))
			fmt.Fprintln(out, ui.SignHelper(s.tracker.Progress()))
			return nil
		},
	}
	return cmd
}
