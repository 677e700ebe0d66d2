package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tennisoath/internal/ui"
)

func newCalendarCmd(a *app) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show the month grid of signed days",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := a.openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			cal := s.tracker.Calendar()
			if month != "" {
				m, err := time.ParseInLocation("2006-01", month, time.Local)
				if err != nil {
					return fmt.Errorf("invalid --month %q: expected YYYY-MM", month)
				}
				if m.After(s.tracker.ViewMonth()) {
					return fmt.Errorf("invalid --month %q: future months have no signs", month)
				}
				cal = s.tracker.CalendarFor(m.Year(), m.Month())
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCal, "Oath Calendar"))
			fmt.Fprintln(out, ui.RenderCalendar(cal))
			fmt.Fprintln(out, ui.CalendarLegend())
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to show (YYYY-MM), defaults to the current month")
	return cmd
}
