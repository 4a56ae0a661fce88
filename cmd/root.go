package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sparky",
		Short:         "Sparky: an emotion-aware Chinese tutor for young learners",
		Long:          "sparky runs tutoring sessions with Sparky the dragon. Each turn reads the child's mood, tracks their language level and vocabulary, and picks what to teach next. Sessions are recorded as JSONL transcripts that can be replayed.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newChatCmd(app),
		newReplayCmd(app),
		newWordsCmd(app),
		newKeyCmd(app),
	)

	return rootCmd
}
