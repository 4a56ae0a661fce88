package cmd

import (
	"fmt"
	"strings"

	catalogrepo "github.com/bnema/sparky/internal/adapters/catalog"
	"github.com/bnema/sparky/internal/adapters/trajectory/jsonl"
	"github.com/bnema/sparky/internal/domain"
	"github.com/spf13/cobra"
)

func newWordsCmd(app *app) *cobra.Command {
	var stage string
	var transcript string

	cmd := &cobra.Command{
		Use:   "words",
		Short: "List the vocabulary bank",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := app.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			words := catalog.Words()
			if strings.TrimSpace(stage) != "" {
				parsed, err := domain.ParseStage(stage)
				if err != nil {
					return err
				}
				words = catalog.Reachable(parsed)
			}

			var knowledge domain.KnowledgeSnapshot
			if transcript != "" {
				steps, err := jsonl.Load(transcript)
				if err != nil {
					return err
				}
				if len(steps) > 0 {
					knowledge = domain.SnapshotFromEntries(steps[len(steps)-1].Knowledge)
				}
			}

			rendered, err := app.wordsRender(words, knowledge)
			if err != nil {
				return fmt.Errorf("render words: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().StringVar(&stage, "stage", "", "Only words reachable at this stage (L1-L5)")
	cmd.Flags().StringVar(&transcript, "transcript", "", "Mark words known in this transcript")

	cmd.AddCommand(newWordsExportCmd(app))

	return cmd
}

func newWordsExportCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.toml|file.yaml>",
		Short: "Write the current vocabulary bank to an editable file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := app.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			if err := catalogrepo.Save(cmd.Context(), args[0], catalog.Words()); err != nil {
				return fmt.Errorf("export vocabulary: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d words to %s\n", catalog.Len(), args[0])
			return err
		},
	}
}
