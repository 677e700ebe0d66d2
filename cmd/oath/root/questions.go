package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"tennisoath/internal/engine"
	"tennisoath/internal/ui"
)

func newQuestionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "questions",
		Aliases: []string{"ls", "list"},
		Short:   "List the oath for the active role",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := a.openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			role, ok := s.tracker.CurrentRole()
			if !ok {
				return fmt.Errorf("%w: run `oath role player` or `oath role parent`", engine.ErrNoRole)
			}
			printChecklist(cmd, s.tracker, role)
			return nil
		},
	}
	return cmd
}

func printChecklist(cmd *cobra.Command, tracker *engine.Tracker, role engine.Role) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.Heading(ui.IconTennis, role.Header()))
	fmt.Fprintln(out, ui.Muted.Render(role.Intro()))
	fmt.Fprintln(out, "")
	for i, q := range tracker.CurrentQuestions() {
		fmt.Fprintf(out, "%2d. %s %s %s\n", i+1, ui.Check(tracker.IsAcknowledged(i)), q.Icon, q.Text)
	}
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, ui.SignHelper(tracker.Progress()))
}
