package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bnema/sparky/internal/adapters/trajectory/jsonl"
	"github.com/bnema/sparky/internal/application"
	"github.com/spf13/cobra"
)

var errReplayInconsistent = errors.New("transcript does not replay consistently")

func newReplayCmd(app *app) *cobra.Command {
	var asJSON bool
	var strict bool

	cmd := &cobra.Command{
		Use:   "replay <transcript.jsonl>",
		Short: "Re-derive the decisions of a recorded session and report divergences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := jsonl.Load(args[0])
			if err != nil {
				return err
			}

			catalog, err := app.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			report, err := application.Replay(steps, app.settings.Config, catalog)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				rendered, err := app.replayRender(report)
				if err != nil {
					return fmt.Errorf("render replay: %w", err)
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), rendered); err != nil {
					return err
				}
			}

			if strict && !report.Consistent() {
				return errReplayInconsistent
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when any decision diverges or an invariant is broken")

	return cmd
}
