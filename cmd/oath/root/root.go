package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tennisoath/internal/config"
	"tennisoath/internal/logging"
	"tennisoath/internal/ui"
)

const Version = "2.0.0"

func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "oath",
		Short:         "Tennis Oath: read it, check it, sign it",
		Long:          "Tennis Oath is a local-first checklist: acknowledge every commitment, sign the day, keep the streak alive.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath(), "Config file (.yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&a.dbOverride, "db", "", "Data file path (overrides config)")

	rootCmd.AddCommand(
		newRoleCmd(a),
		newSwitchCmd(a),
		newQuestionsCmd(a),
		newAckCmd(a),
		newSignCmd(a),
		newStatusCmd(a),
		newCalendarCmd(a),
		newThemeCmd(a),
		newBoardCmd(a),
	)
	return rootCmd
}

func (a *app) init(cmd *cobra.Command) error {
	mustExist := cmd.Flags().Changed("config")
	cfg, err := config.Load(a.configPath, mustExist)
	if err != nil {
		return err
	}
	if a.dbOverride != "" {
		cfg.Storage.Path = a.dbOverride
	}
	a.cfg = cfg
	a.log = logging.New(cfg.Logging, cmd.ErrOrStderr())
	return nil
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
