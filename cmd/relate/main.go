package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"relate/internal/util"
	"relate/pkg/graph"
	"relate/pkg/loader"
	"relate/pkg/logger"
	"relate/pkg/logger/console"
	"relate/pkg/ner"
	"relate/pkg/wikidata"

	"github.com/spf13/cobra"
)

var (
	inputFlag  string
	outputFlag string
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "relate",
	Short: "Extract entity relationships from text",
	Long: `Extract named entities from text, resolve them against Wikidata, and
discover the relationships between every entity pair.

The input may be a local file, '-' for stdin, or an http(s) URL. Web pages
are reduced to their readable article text before analysis.

Each discovered relationship is written as one line:
  {'subject': ..., 'subject_qid': ..., 'predicate': ..., 'predicate_pid': ..., 'object': ..., 'object_qid': ..., 'subject_in_degree': ..., 'object_in_degree': ...}

Examples:
  relate --input article.txt
  relate --input https://en.wikipedia.org/wiki/Alan_Turing --output triplets.txt
  echo "Alan Turing was born in the United Kingdom." | relate --input -`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.Flags().StringVarP(&inputFlag, "input", "i", "-", "input source: file path, '-' for stdin, or URL")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "-", "output destination: file path or '-' for stdout")
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	util.LoadEnv()

	debug := debugFlag || util.GetEnvBool("DEBUG", false)
	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	text, err := loader.NewLoader(cmd.InOrStdin()).Load(ctx, inputFlag)
	if err != nil {
		return fmt.Errorf("failed to load input: %w", err)
	}

	aiClient, err := util.NewExtractAIClient()
	if err != nil {
		return err
	}

	extractor := ner.NewAIExtractor(ner.NewAIExtractorParams{
		Client:     aiClient,
		Encoder:    util.GetEnvString("TOKEN_ENCODER", "o200k_base"),
		MaxTokens:  int(util.GetEnvNumeric("MAX_UNIT_TOKENS", 2000)),
		MaxRetries: int(util.GetEnvNumeric("MAX_RETRIES", 3)),
		Parallel:   int(util.GetEnvNumeric("PARALLEL_LOOKUPS", 8)),
	})

	kg := wikidata.NewClient(wikidata.NewClientParams{
		BaseURL: util.GetEnv("WIKIDATA_URL"),
		Timeout: time.Duration(util.GetEnvNumeric("WIKIDATA_TIMEOUT_SECONDS", 10)) * time.Second,
	})

	graphClient := graph.NewGraphClient(graph.NewGraphClientParams{
		KG:                  kg,
		SimilarityThreshold: util.GetEnvNumeric("SIMILARITY_THRESHOLD", 0),
		ParallelLookups:     int(util.GetEnvNumeric("PARALLEL_LOOKUPS", 8)),
		MaxRetries:          int(util.GetEnvNumeric("MAX_RETRIES", 3)),
	})

	result, err := graphClient.Analyze(ctx, extractor, text)
	if err != nil {
		return err
	}
	logger.Info("Analysis finished",
		"mentions", len(result.Mentions),
		"entities", len(result.Entities),
		"relationships", len(result.Triplets),
	)

	records := graph.FormatTriplets(result.Triplets)
	if records != "" {
		records += "\n"
	}

	if outputFlag == "-" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), records)
		return err
	}
	return os.WriteFile(outputFlag, []byte(records), 0o644)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
