/*
Command ropedump loads a text file into a rope and prints statistics about
the resulting tree. Optionally it prints the tree itself, either as an
indented outline or in Graphviz DOT format.

	ropedump [flags] file

Statistics are colorized when writing to a terminal.
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	showTree    bool
	showDot     bool
	showLines   int
	fragSize    int64
	maxChildren int
	minChildren int
	storage     string
	traceLevel  string
	noProgress  bool
)

var rootCmd = &cobra.Command{
	Use:   "ropedump [flags] file",
	Short: "Load a text file as a rope and inspect its tree",
	Long: `ropedump reads a UTF-8 text file into a summarized B-tree of text chunks
and prints statistics about the tree: its height, fan-out and the number
of bytes, runes, lines and chunks it holds.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runDump,
}

func init() {
	rootCmd.Flags().BoolVar(&showTree, "tree", false, "print the tree as an indented outline")
	rootCmd.Flags().BoolVar(&showDot, "dot", false, "print the tree in Graphviz DOT format")
	rootCmd.Flags().IntVarP(&showLines, "lines", "n", 0, "print the first n lines of the text")
	rootCmd.Flags().Int64Var(&fragSize, "fragment", 0, "length of file fragments to read (0 = choose by file size)")
	rootCmd.Flags().IntVarP(&maxChildren, "degree", "d", 0, "maximum number of children of inner nodes")
	rootCmd.Flags().IntVar(&minChildren, "min", 0, "minimum number of children of inner nodes")
	rootCmd.Flags().StringVar(&storage, "storage", "", "child storage: shared or exclusive")
	rootCmd.Flags().StringVar(&traceLevel, "trace", "Error", "trace level: Error, Info or Debug")
	rootCmd.Flags().BoolVar(&noProgress, "no-progress", false, "do not report loading progress")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
