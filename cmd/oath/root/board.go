package root

import (
	"context"

	"github.com/spf13/cobra"

	"tennisoath/internal/tui"
)

func newBoardCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive oath board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, cleanup, err := a.openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.RunBoard(ctx, s.tracker, s.themes, tui.Options{ResetDelay: a.cfg.Board.ResetDelay}, cmd.OutOrStdout())
		},
	}
	return cmd
}
