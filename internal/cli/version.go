package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/declare-cloud/releasenotes/internal/build"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information",
	Long:    "Display version, commit, build date, and Go version information for releasenotes",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		plain, _ := cmd.Flags().GetBool("plain")
		info := build.Current()
		w := cmd.OutOrStdout()

		if plain || plainOutput(w, false) {
			fmt.Fprintf(w, "releasenotes %s\n", info.Version)
			fmt.Fprintf(w, "commit: %s\n", info.Commit)
			fmt.Fprintf(w, "built: %s\n", info.BuildDate)
			fmt.Fprintf(w, "go: %s\n", info.GoVersion)
			fmt.Fprintf(w, "platform: %s\n", info.Platform)
			return
		}

		label := color.New(color.FgCyan).SprintFunc()
		fmt.Fprintf(w, "%s %s\n", color.New(color.Bold).Sprint("releasenotes"), info.Version)
		fmt.Fprintf(w, "  %s %s\n", label("commit:  "), info.Commit)
		fmt.Fprintf(w, "  %s %s\n", label("built:   "), info.BuildDate)
		fmt.Fprintf(w, "  %s %s\n", label("go:      "), info.GoVersion)
		fmt.Fprintf(w, "  %s %s\n", label("platform:"), info.Platform)
	},
}

func init() {
	versionCmd.GroupID = GroupInfo
	versionCmd.Flags().Bool("plain", false, "Plain output without formatting")
	rootCmd.AddCommand(versionCmd)
}
