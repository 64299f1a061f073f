package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joshuapare/slotkit/window"
	"github.com/spf13/cobra"
)

var windowWords int

func init() {
	cmd := newWindowFilterCmd()
	cmd.Flags().IntVar(&windowWords, "words", 4, "Window size in 64-bit words")
	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "Sliding-window duplicate filtering",
	}
	windowCmd.AddCommand(cmd)
	rootCmd.AddCommand(windowCmd)
}

func newWindowFilterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filter",
		Short: "Drop duplicate indexes from a stream",
		Long: `The filter command reads one unsigned integer per line from stdin and
echoes only the first occurrence of each. Indexes that fall behind the sliding
window are treated as duplicates.

Example:
  printf '1\n2\n2\n3\n1\n' | slotctl window filter
  slotctl window filter --words 16 < indexes.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindowFilter()
		},
	}
}

func runWindowFilter() error {
	w := window.New(windowWords)
	dropped := 0

	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		idx, err := strconv.ParseUint(line, 10, 64)
		if err != nil {
			return fmt.Errorf("window filter: %w", err)
		}
		if w.Insert(idx) {
			printInfo("%d\n", idx)
		} else {
			dropped++
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("window filter: %w", err)
	}
	slog.Debug("filter complete", "dropped", dropped, "first", w.First())
	return nil
}
