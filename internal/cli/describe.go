package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/afrotie/ethio/internal/assist"
	"github.com/afrotie/ethio/internal/catalog"
	"github.com/afrotie/ethio/internal/emoji"
)

var (
	describeTitle    string
	describeCategory string
	describeFeatures string
	describePrompt   bool
	describeCheck    bool
)

func newDescribeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Write a sales description with the AI assistant",
		Long: `Ask the configured provider for a short sales description, the same
request the post wizard sends.

Requires ai.api_key, GEMINI_API_KEY or API_KEY (ollama needs none). Use
--prompt to print the request without sending it, or --check to verify
the provider accepts the credential.

Examples:
  ethio describe --title "iPhone 13" --category items --features "128GB, blue"
  ethio describe --title "Toyota Vitz" --category cars --prompt
  ethio describe --check`,
		Args: cobra.NoArgs,
		RunE: runDescribe,
	}

	cmd.Flags().StringVar(&describeTitle, "title", "", "listing title (required)")
	cmd.Flags().StringVar(&describeCategory, "category", string(catalog.CategoryItems), "listing category")
	cmd.Flags().StringVar(&describeFeatures, "features", "", "comma separated key features")
	cmd.Flags().BoolVar(&describePrompt, "prompt", false, "print the prompt instead of sending it")
	cmd.Flags().BoolVar(&describeCheck, "check", false, "check the provider connection and credential")
	cmd.MarkFlagsMutuallyExclusive("prompt", "check")

	return cmd
}

func runDescribe(cmd *cobra.Command, args []string) error {
	if describeCheck {
		return runDescribeCheck(cmd)
	}
	if strings.TrimSpace(describeTitle) == "" {
		return errors.New(`required flag(s) "title" not set`)
	}

	category, err := catalog.ParseCategory(describeCategory)
	if err != nil {
		return err
	}
	req := assist.Request{
		Title:    describeTitle,
		Category: category,
		Features: describeFeatures,
	}

	out := cmd.OutOrStdout()
	if describePrompt {
		p := assist.BuildPrompt(req)
		fmt.Fprintf(out, "system: %s\n\n%s\n", p.SystemPrompt, p.String())
		return nil
	}

	return withApp(appOptions{}, func(a *app) error {
		describer, err := assist.NewFromConfig(a.cfg.AI, a.log)
		if err != nil {
			return err
		}
		defer func() { _ = describer.Close() }()

		ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		text, err := describer.Describe(ctx, req)
		if err != nil {
			return configHint(err)
		}

		fmt.Fprintf(out, "%s %s\n", emoji.GetEmoji("sparkles"), text)
		return nil
	})
}

func runDescribeCheck(cmd *cobra.Command) error {
	return withApp(appOptions{}, func(a *app) error {
		describer, err := assist.NewFromConfig(a.cfg.AI, a.log)
		if err != nil {
			return err
		}
		defer func() { _ = describer.Close() }()

		ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := describer.Check(ctx); err != nil {
			return configHint(err)
		}
		provider := a.cfg.AI.Provider
		if provider == "" {
			provider = "gemini"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s AI assistant is ready (%s)\n", emoji.GetEmoji("success"), provider)
		return nil
	})
}

func configHint(err error) error {
	if errors.Is(err, assist.ErrNotConfigured) {
		return fmt.Errorf("%w; run 'ethio config show' to check the ai section", err)
	}
	return err
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
