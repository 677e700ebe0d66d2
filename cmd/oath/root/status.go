package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tennisoath/internal/ui"
)

func newStatusCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show role, progress, streak and sign counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := a.openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			role, hasRole := s.tracker.CurrentRole()
			fmt.Fprintln(out, ui.Heading(ui.IconTennis, "Tennis Oath"))
			fmt.Fprintln(out, ui.LabelValue("Role", role.Badge()))
			if hasRole {
				done, total := s.tracker.Progress()
				fmt.Fprintln(out, ui.LabelValue("Checklist", fmt.Sprintf("%d/%d", done, total)))
				fmt.Fprintln(out, ui.LabelValue("Signed today", yesNo(s.tracker.SignedToday())))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render(ui.IconFire+" Stats"))
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("Streak:"), s.tracker.CalculateStreak())
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("Total signs:"), s.tracker.TotalSigns())
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("This week:"), s.tracker.WeekSigns())
			return nil
		},
	}
	return cmd
}

func yesNo(ok bool) string {
	if ok {
		return ui.Good.Render("yes")
	}
	return ui.Muted.Render("no")
}
