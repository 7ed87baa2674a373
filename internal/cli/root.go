package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/afrotie/ethio/internal/emoji"
	"github.com/afrotie/ethio/internal/ui"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string
	offline   bool
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ethio",
		Short: "ETHIO marketplace in your terminal",
		Long: `ethio is a terminal client for the ETHIO marketplace: browse featured
listings, vehicles, real estate and jobs, save items, chat previews and post
your own ads with an AI-written description.

Run without a subcommand to open the interactive client. The subcommands
print the same data for scripts and pipes.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)
			ui.ConfigureColor("", noColor)
		},
		RunE: runTUI,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "output format (text, json, markdown, csv); defaults to output.default_format")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "report no connectivity at startup")

	rootCmd.AddCommand(newBrowseCommand())
	rootCmd.AddCommand(newListingsCommand())
	rootCmd.AddCommand(newJobsCommand())
	rootCmd.AddCommand(newChatsCommand())
	rootCmd.AddCommand(newSavedCommand())
	rootCmd.AddCommand(newThemeCommand())
	rootCmd.AddCommand(newDescribeCommand())
	rootCmd.AddCommand(newLogsCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ethio %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// Global helpers
func isVerbose() bool {
	return verbose
}
