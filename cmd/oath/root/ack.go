package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tennisoath/internal/engine"
)

func newAckCmd(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "ack <n...>",
		Short: "Toggle acknowledgment of oath points (1-based)",
		Example: "  oath ack 1 2 3\n" +
			"  oath ack --all",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) == 0 {
				return errors.New("give at least one point number, or --all")
			}
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
			n := role.QuestionCount()

			indices := make([]int, 0, len(args))
			if all {
				// --all only fills in the gaps; it never unchecks.
				for i := 0; i < n; i++ {
					if !s.tracker.IsAcknowledged(i) {
						indices = append(indices, i)
					}
				}
			} else {
				for _, arg := range args {
					v, err := strconv.Atoi(arg)
					if err != nil || v < 1 || v > n {
						return fmt.Errorf("invalid point %q: expected 1..%d", arg, n)
					}
					indices = append(indices, v-1)
				}
			}

			for _, i := range indices {
				s.tracker.ToggleQuestion(ctx, i)
			}
			printChecklist(cmd, s.tracker, role)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Acknowledge every remaining point")
	return cmd
}
