package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tennisoath/internal/engine"
	"tennisoath/internal/ui"
)

func newSignCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign today's oath once every point is acknowledged",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := a.openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if _, ok := s.tracker.CurrentRole(); !ok {
				return fmt.Errorf("%w: run `oath role player` or `oath role parent`", engine.ErrNoRole)
			}
			res, ok := s.tracker.SignToday(ctx)
			if !ok {
				done, total := s.tracker.Progress()
				return fmt.Errorf("not ready to sign: %d/%d points acknowledged", done, total)
			}
			// The CLI has nothing left on screen to keep, so the reset is immediate.
			s.tracker.ResetAfterSign(ctx, res.Token)

			out := cmd.OutOrStdout()
			if res.AlreadySigned {
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%s already signed %s.", res.Role.Badge(), res.Date)))
			} else {
				fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s Oath signed for %s!", ui.IconTennis, res.Date)))
			}
			fmt.Fprintln(out, ui.Gold.Render(fmt.Sprintf("%s Streak: %d", ui.IconFire, s.tracker.CalculateStreak())))
			return nil
		},
	}
	return cmd
}
