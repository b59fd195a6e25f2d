package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/sumrope"
	"github.com/npillmayer/sumrope/btree"
	"github.com/npillmayer/sumrope/chunk"
	"github.com/npillmayer/sumrope/textfile"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// tracers configured from the command line
var tracerKeys = []string{"root", "sumrope", "sumrope.btree", "sumrope.textfile"}

func runDump(cmd *cobra.Command, args []string) error {
	conf := settings()
	if err := setupTracing(conf); err != nil {
		return err
	}
	cfg, err := btree.ConfigFrom(conf)
	if err != nil {
		return err
	}
	var progress io.Writer
	if !noProgress && term.IsTerminal(int(os.Stderr.Fd())) {
		progress = cmd.ErrOrStderr()
	}
	text, err := load(cmd.Context(), args[0], cfg, progress)
	if err != nil {
		return err
	}
	return report(cmd.OutOrStdout(), args[0], text, terminalWidth())
}

// settings collects the command line flags into a configuration.
func settings() flagConfig {
	conf := flagConfig{
		"tracing.adapter": "go",
	}
	for _, key := range tracerKeys {
		conf["trace."+key] = traceLevel
	}
	if maxChildren > 0 {
		conf[btree.KeyMaxChildren] = maxChildren
	}
	if minChildren > 0 {
		conf[btree.KeyMinChildren] = minChildren
	}
	if storage != "" {
		conf[btree.KeyStorage] = storage
	}
	return conf
}

func setupTracing(conf flagConfig) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}

// load reads file name into a text. If progress is non-nil, loading progress
// is reported to it.
func load(ctx context.Context, name string, cfg btree.Config, progress io.Writer) (sumrope.Text, error) {
	l, err := textfile.Open(name, fragSize, cfg)
	if err != nil {
		return sumrope.Text{}, err
	}
	var wg sync.WaitGroup
	if progress != nil {
		ch := l.Subscribe(ctx)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range ch {
				fmt.Fprintf(progress, "\r%3d%% %s", 100*p.Loaded/max(p.Total, 1), p)
			}
			fmt.Fprintln(progress)
		}()
	}
	l.Start(ctx)
	text, err := l.Wait()
	wg.Wait()
	return text, err
}

// report prints statistics about text and, depending on the flags, its
// lines and tree.
func report(w io.Writer, name string, text sumrope.Text, width int) error {
	label := color.New(color.FgBlue)
	value := color.New(color.Bold)
	cfg := text.Config()
	sum := text.Summary()
	fill := 0.0
	if sum.Chunks > 0 {
		fill = 100 * float64(sum.Bytes) / float64(sum.Chunks*chunk.MaxBase)
	}
	stat := func(key string, format string, args ...interface{}) {
		label.Fprintf(w, "%-10s", key)
		value.Fprintf(w, format, args...)
		fmt.Fprintln(w)
	}
	stat("file", "%s", name)
	stat("bytes", "%d", sum.Bytes)
	stat("runes", "%d", sum.Chars)
	stat("lines", "%d", sum.Lines+1)
	stat("chunks", "%d (%.1f%% filled)", sum.Chunks, fill)
	stat("height", "%d", text.Height())
	stat("fan-out", "%d..%d, %s storage", cfg.MinChildren, cfg.MaxChildren, cfg.Storage)
	if err := text.Check(); err != nil {
		color.New(color.FgRed).Fprintf(w, "invalid tree: %v\n", err)
	}
	for i := 0; i < showLines && uint64(i) <= sum.Lines; i++ {
		line, err := text.Line(uint64(i))
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%5d  %s\n", i+1, clip(line, width-7))
	}
	if showTree {
		fmt.Fprint(w, text.Dump())
	}
	if showDot {
		return text.Dot(w)
	}
	return nil
}

// clip shortens s to at most n runes.
func clip(s string, n int) string {
	if n < 1 {
		return ""
	}
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}

// terminalWidth returns the width of the terminal on stdout, or 80 if stdout
// is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 10 {
			return w
		}
	}
	return 80
}
