package cmd

import (
	"fmt"

	"github.com/alpkeskin/gotoon"
	"github.com/pders01/prochist/internal/config"
	"github.com/pders01/prochist/internal/history"
	"github.com/pders01/prochist/internal/ollama"
	"github.com/spf13/cobra"
)

var describeModel string

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Summarize a file's lineage with a local LLM",
	Long: `Read the processing history of the given file and ask a local Ollama
model for a plain-language summary of how the file was produced.

Requires a running Ollama instance (https://ollama.com).

Example:
  prochist describe result.tif --model llama3.2`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func init() {
	rootCmd.AddCommand(describeCmd)

	describeCmd.Flags().StringVar(&describeModel, "model", "", "Ollama model to use (default from config)")
}

func runDescribe(cmd *cobra.Command, args []string) error {
	lineage, err := history.ReadHistory(args[0])
	if err != nil {
		return err
	}
	if lineage == nil {
		return fmt.Errorf("no processing history found in %s", args[0])
	}

	url := config.OllamaURL()
	if !ollama.IsAvailable(url) {
		return fmt.Errorf("ollama is not reachable at %s (is it running?)", url)
	}

	model := describeModel
	if model == "" {
		model = config.OllamaModel()
	}
	client, err := ollama.NewClient(url, model)
	if err != nil {
		return err
	}

	// Toon keeps the prompt compact for the model
	doc, err := gotoon.Encode(lineage.Document())
	if err != nil {
		return fmt.Errorf("failed to encode lineage: %w", err)
	}

	summary, err := client.Summarize(cmd.Context(), args[0], doc)
	if err != nil {
		return err
	}

	fmt.Println(summary)
	return nil
}
