package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/declare-cloud/releasenotes/internal/config"
	clierrors "github.com/declare-cloud/releasenotes/internal/errors"
	"github.com/declare-cloud/releasenotes/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the active rule table",
	Long: `List the active classification rules in declaration order.

The first rule that matches a commit decides its section, icon and visibility.
Severity comes from the first matching rule that assigns one. The table is the
built-in one unless rules_file is configured.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return clierrors.ConfigInvalid(configPath, err)
		}

		table := rules.Default()
		origin := "built-in"
		if cfg.RulesFile != "" {
			table, err = rules.Load(cfg.RulesFile)
			if err != nil {
				return clierrors.RulesInvalid(cfg.RulesFile, err)
			}
			origin = cfg.RulesFile
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Rules (%s):\n", origin)
		for i, r := range table.Rules() {
			fmt.Fprintf(w, "  %2d. %s\n", i+1, r)
		}
		return nil
	},
}

func init() {
	rulesCmd.GroupID = GroupInfo
	rootCmd.AddCommand(rulesCmd)
}
