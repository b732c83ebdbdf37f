package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/hyperengineering/vectord/internal/config"
	"github.com/hyperengineering/vectord/internal/embedding"
	"github.com/hyperengineering/vectord/internal/types"
)

var embedModelOverride string

var embedCmd = &cobra.Command{
	Use:   "embed [text ...]",
	Short: "Embed texts from arguments or stdin without running the server",
	Long: "Generates embeddings for the given texts using the configured provider " +
		"and prints them as JSON. With no arguments, reads one text per line from stdin.",
	RunE: runEmbed,
}

func init() {
	embedCmd.Flags().StringVar(&embedModelOverride, "model", "",
		"Embedding model (overrides config and VECTORD_EMBEDDING_MODEL)")
	rootCmd.AddCommand(embedCmd)
}

func runEmbed(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if embedModelOverride != "" {
		cfg.Embedding.Model = embedModelOverride
	}

	texts := args
	if len(texts) == 0 {
		texts, err = readLines(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
	}

	embedder, err := embedding.New(ctx, cfg.Embedding)
	if err != nil {
		return fmt.Errorf("initializing embedder: %w", err)
	}

	embeddings, err := embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), types.EmbedResponse{Embeddings: embeddings})
}

// readLines collects non-empty lines from r.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// printJSON marshals v to indented JSON and writes it to w.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
