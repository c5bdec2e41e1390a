package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"text2sql-api/internal/config"
	"text2sql-api/internal/generator"
	"text2sql-api/internal/llm"
	"text2sql-api/internal/prompt"
	"text2sql-api/internal/schema"
	"text2sql-api/pkg/logger"

	"github.com/spf13/cobra"
)

type askFlags struct {
	schemaFile string
	dialect    string
	retries    int
	extractor  string
	endpoint   string
	model      string
	prompt     string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "sqlgen",
		Short:        "sqlgen turns natural-language questions into SQL SELECT statements.",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(tablesCmd())
	return rootCmd
}

func askCmd() *cobra.Command {
	flags := askFlags{}

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Generate SQL for a question",
		Long: "Generate a single SELECT statement for the question using the tables in --schema.\n" +
			"The model endpoint and API key come from config.yaml or LLM_* environment variables.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.schemaFile, "schema", "s", "", "YAML or JSON file with table definitions")
	cmd.Flags().StringVar(&flags.dialect, "dialect", "", "SQL dialect named in the prompt (default from config)")
	cmd.Flags().IntVar(&flags.retries, "retries", -1, "retries after the first attempt (default from config)")
	cmd.Flags().StringVar(&flags.extractor, "extractor", "", "extraction strategy: default, plain or strict")
	cmd.Flags().StringVar(&flags.endpoint, "endpoint", "", "chat-completion URL (overrides llm.api_endpoint)")
	cmd.Flags().StringVar(&flags.model, "model", "", "model name (overrides llm.model)")
	cmd.Flags().StringVar(&flags.prompt, "prompt", "", "send this prompt instead of the built one")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "log each attempt to stderr")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runAsk(cmd *cobra.Command, question string, flags askFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cfg, flags)
	if err := cfg.Validate(); err != nil {
		return err
	}

	tables, err := schema.LoadFile(flags.schemaFile)
	if err != nil {
		return err
	}

	endpoint, opts, err := generator.FromConfig(cfg)
	if err != nil {
		return err
	}
	opts = append(opts, generator.WithTables(tables...))

	if flags.verbose {
		log, err := logger.NewWithLevel("debug")
		if err != nil {
			return err
		}
		opts = append(opts, generator.WithLogger(log.Zap()))
	}

	gen, err := generator.New(endpoint, opts...)
	if err != nil {
		return err
	}

	// Upper bound for the whole retry loop
	budget := time.Duration(cfg.LLM.TimeoutMs+cfg.LLM.RetryIntervalMs) * time.Millisecond * time.Duration(cfg.LLM.MaxRetries+1)
	ctx, cancel := context.WithTimeout(cmd.Context(), budget)
	defer cancel()

	sql, err := gen.Generate(ctx, generator.Request{Question: question, PromptOverride: flags.prompt})
	if err != nil {
		if failure, ok := llm.AsGenerationFailed(err); ok {
			return fmt.Errorf("%s: %w", failure.Message(), errors.Unwrap(failure))
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), sql)
	return nil
}

func applyFlags(cfg *config.Config, flags askFlags) {
	if flags.dialect != "" {
		cfg.Generation.Dialect = flags.dialect
	}
	if flags.retries >= 0 {
		cfg.LLM.MaxRetries = flags.retries
	}
	if flags.extractor != "" {
		cfg.Generation.Extractor = flags.extractor
	}
	if flags.endpoint != "" {
		cfg.LLM.APIEndpoint = flags.endpoint
	}
	if flags.model != "" {
		cfg.LLM.Model = flags.model
	}
}

func tablesCmd() *cobra.Command {
	var schemaFile string

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Print the schema block that would be sent to the model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := schema.LoadFile(schemaFile)
			if err != nil {
				return err
			}
			catalog, err := schema.NewCatalog(tables...)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), prompt.DescribeTables(catalog.Snapshot()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&schemaFile, "schema", "s", "", "YAML or JSON file with table definitions")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}
