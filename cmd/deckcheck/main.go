package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/agenthands/deckcheck/internal/analyze"
	"github.com/agenthands/deckcheck/internal/config"
	"github.com/agenthands/deckcheck/internal/extract"
	"github.com/agenthands/deckcheck/internal/llm"
	"github.com/agenthands/deckcheck/internal/report"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("deckcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	pptx := fs.String("pptx", "", "path to the .pptx file")
	folder := fs.String("image-folder", "", "path to the folder with slide images")
	cfgPath := fs.String("config", "deckcheck.toml", "path to the config file")
	noColor := fs.Bool("no-color", false, "disable ANSI styling in the report output")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if (*pptx == "") == (*folder == "") {
		fmt.Fprintln(stderr, "exactly one of -pptx or -image-folder is required")
		fs.Usage()
		return 2
	}

	logger := log.New(stderr, "", log.LstdFlags)
	log.SetOutput(stderr)

	if err := godotenv.Load(); err != nil {
		logger.Println("No .env file found, using environment as-is")
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Printf("ERROR: %v", err)
		return 1
	}

	// The credential check happens before any extraction work. Ollama is the
	// one provider that runs without a key.
	if cfg.ResolveAPIKey() == "" && strings.ToLower(cfg.LLM.Provider) != "ollama" {
		logger.Printf("ERROR: no API key found for provider %q. Set it in the environment or a .env file.", cfg.LLM.Provider)
		return 1
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		logger.Printf("ERROR: failed to initialize model client: %v", err)
		return 1
	}
	if closer, ok := client.(io.Closer); ok {
		defer closer.Close()
	}

	var blob string
	if *pptx != "" {
		blob, err = extract.NewDeckExtractor(client, cfg.Prompts.OCR).Extract(ctx, *pptx)
	} else {
		blob, err = extract.NewFolderExtractor(client, cfg.Prompts.OCR).Extract(ctx, *folder)
	}
	if err != nil {
		logger.Printf("ERROR: %v", err)
		return 1
	}
	if blob == "" {
		logger.Printf("WARN: no content extracted; skipping analysis")
		return 0
	}

	result, err := analyze.NewAnalyzer(client, cfg.Prompts.Analysis).Run(ctx, blob)
	if err != nil {
		logger.Printf("ERROR: %v", err)
		return 1
	}

	if err := report.New(stdout, !*noColor).Print(result); err != nil {
		logger.Printf("ERROR: failed to write report: %v", err)
		return 1
	}
	return 0
}
