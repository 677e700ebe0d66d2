package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tennisoath/internal/engine"
	"tennisoath/internal/ui"
)

func newRoleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role [player|parent]",
		Short: "Show or choose who is taking the oath",
		Long:  "Without an argument, shows the active role. With one, selects it on first run; use `oath switch` to change an established role.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := a.openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				role, ok := s.tracker.CurrentRole()
				if !ok {
					fmt.Fprintln(out, ui.Muted.Render("No role yet. Pick one: oath role player | oath role parent"))
					return nil
				}
				fmt.Fprintln(out, ui.LabelValue("Role", role.Badge()))
				return nil
			}

			role, err := engine.ParseRole(args[0])
			if err != nil {
				return err
			}
			if _, err := s.tracker.SelectRole(ctx, role); err != nil {
				if errors.Is(err, engine.ErrRoleAlreadySelected) {
					return fmt.Errorf("%w (use `oath switch %s`)", err, role)
				}
				return err
			}
			fmt.Fprintln(out, ui.Good.Render(ui.IconCheck+" Role: "+role.Badge()))
			fmt.Fprintln(out, ui.Muted.Render(role.Intro()))
			return nil
		},
	}
	return cmd
}
