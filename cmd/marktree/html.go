package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/larskjaer/marktree"
	"github.com/larskjaer/marktree/encoding"
	"github.com/larskjaer/marktree/filter"
	"github.com/larskjaer/marktree/serialize"
)

var (
	outputPath    string
	encodingHints []string
	filterBanned  bool
	textNormalize bool
	debugLevel    int
)

var htmlCmd = &cobra.Command{
	Use:   "html [INPUT-FILE]",
	Short: "Parse an HTML document and print it back out",
	Long: `html drives marktree.ParseBuffered over INPUT-FILE (or stdin, if no
file is given), optionally running the built-in content filters, then
serializes the result to --output (or stdout).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHTML,
}

func init() {
	rootCmd.AddCommand(htmlCmd)

	htmlCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write serialized output to PATH instead of stdout")
	htmlCmd.Flags().StringArrayVarP(&encodingHints, "encoding", "e", nil, "declare a candidate encoding label (repeatable, 0.11 confidence each)")
	htmlCmd.Flags().BoolVarP(&filterBanned, "filter-banned", "f", false, "detach banned elements, comments, and processing instructions")
	htmlCmd.Flags().BoolVarP(&textNormalize, "text-normalize", "t", false, "collapse and trim whitespace, fold empty inline elements")
	htmlCmd.Flags().CountVarP(&debugLevel, "debug", "d", "increase log verbosity (repeatable, up to 4x)")
}

func runHTML(cmd *cobra.Command, args []string) error {
	in := os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in = f
	}

	logger := newLogger(debugLevel)

	hint := encoding.NewHint()
	for _, label := range encodingHints {
		hint.AddLabelHint(label, encoding.CLIHintConfidence)
	}

	doc, err := marktree.ParseBufferedWithLogger(cmd.Context(), hint, in, logger)
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}

	root, ok := doc.RootElement()
	if !ok {
		return fmt.Errorf("parsing: no root element")
	}

	if filterBanned {
		filter.Walk(doc, filter.Chain(filter.DetachBannedElements, filter.DetachComments, filter.DetachPIs))
	}
	if textNormalize {
		normalizer := filter.NewTextNormalizer()
		filter.Walk(doc, filter.Chain(filter.XMPToPre, filter.FoldEmptyInline, normalizer.Filter))
	}

	out := serialize.ToHTML(doc, root, serialize.Options{})

	w := io.Writer(os.Stdout)
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer f.Close()
		w = f
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

func newLogger(count int) *slog.Logger {
	if count == 0 {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	level := slog.LevelWarn
	switch {
	case count >= 4:
		level = slog.LevelDebug - 4
	case count == 3:
		level = slog.LevelDebug
	case count == 2:
		level = slog.LevelInfo
	case count == 1:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
