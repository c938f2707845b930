// vobextract runs one document through extraction and prints the parsed
// record as JSON. It needs no database; point it at a PDF and read stdout.
//
// Usage:
//
//	vobextract [-ai] [-xlsx out.xlsx] file.pdf
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/dentalops/vob-extractor/constants"
	"github.com/dentalops/vob-extractor/internal/common"
	"github.com/dentalops/vob-extractor/internal/export"
	"github.com/dentalops/vob-extractor/internal/extract"
	"github.com/dentalops/vob-extractor/internal/llm/gemini"
	"github.com/dentalops/vob-extractor/internal/match"
	"github.com/dentalops/vob-extractor/internal/pipeline"
)

func main() {
	useAI := flag.Bool("ai", false, "attempt AI extraction before heuristics (needs GEMINI_API_KEY)")
	xlsxOut := flag.String("xlsx", "", "also write the record as an XLSX workbook to this path")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: vobextract [-ai] [-xlsx out.xlsx] file.pdf")
		os.Exit(2)
	}
	path := flag.Arg(0)

	_ = godotenv.Load()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	ext := constants.NormalizeExt(filepath.Ext(path))
	if _, ok := constants.AllowedExtensions[ext]; !ok {
		fmt.Fprintf(os.Stderr, "unsupported file type %q, expected .pdf\n", filepath.Ext(path))
		os.Exit(2)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
		os.Exit(1)
	}

	cfg := common.LoadConfig()
	extractor := extract.NewExtractor(extract.Config{
		LineTolerance: cfg.Extract.LineTolerance,
		MaxPages:      cfg.Extract.MaxPages,
	}, log)
	matcher := match.NewMatcher(log)

	var opts []pipeline.Option
	if *useAI {
		if !cfg.LLM.AIEnabled() {
			fmt.Fprintln(os.Stderr, "-ai requested but GEMINI_API_KEY is not set, using heuristics")
		} else {
			ai := gemini.NewClient(gemini.Config{
				APIKey:      cfg.LLM.APIKey,
				Model:       cfg.LLM.Model,
				Temperature: cfg.LLM.Temperature,
				TopK:        cfg.LLM.TopK,
				Timeout:     cfg.LLM.Timeout,
				MaxAttempts: cfg.LLM.MaxAttempts,
				RetryDelay:  cfg.LLM.RetryDelay,
			}, log)
			opts = append(opts, pipeline.WithAI(ai, cfg.LLM.MinTextLen))
		}
	}

	processor := pipeline.NewProcessor(extractor, matcher, log, opts...)

	ctx := context.Background()
	outcome, err := processor.Process(ctx, filepath.Base(path), data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "extraction failed: %v\n", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(outcome.Record, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
	fmt.Fprintf(os.Stderr, "method=%s pages=%d fields_found=%d\n", outcome.Method, outcome.Pages, outcome.FieldsFound)

	if *xlsxOut != "" {
		book, err := export.RenderRecordXLSX(outcome.Record, outcome.Record.PatientInfo.PatientName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "xlsx render: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*xlsxOut, book, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "xlsx write: %v\n", err)
			os.Exit(1)
		}
	}
}
