package cmd

import (
	"fmt"

	"github.com/bnema/sparky/internal/adapters/secrets"
	"github.com/spf13/cobra"
)

func newKeyCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage provider API keys",
	}

	cmd.AddCommand(newKeySetCmd(app), newKeyRemoveCmd(app))

	return cmd
}

func newKeySetCmd(app *app) *cobra.Command {
	var provider string
	var value string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store an API key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := secrets.APIKey(provider)
			if err != nil {
				return err
			}
			if err := app.secretStore.Put(cmd.Context(), key, value); err != nil {
				return fmt.Errorf("store %s key: %w", provider, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "stored %s\n", key)
			return err
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "Provider (openai|gemini|huggingface)")
	cmd.Flags().StringVar(&value, "value", "", "API key value")
	_ = cmd.MarkFlagRequired("provider")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newKeyRemoveCmd(app *app) *cobra.Command {
	var provider string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a stored API key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := secrets.APIKey(provider)
			if err != nil {
				return err
			}
			if err := app.secretStore.Delete(cmd.Context(), key); err != nil {
				return fmt.Errorf("remove %s key: %w", provider, err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", key)
			return err
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "Provider (openai|gemini|huggingface)")
	_ = cmd.MarkFlagRequired("provider")

	return cmd
}
