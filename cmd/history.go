package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spigell/cv-analyzer/internal/history"
	"github.com/spigell/cv-analyzer/internal/render"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past analyses",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past analyses, newest first",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		s, entries := loadHistory()
		defer s.close()

		if s.structured() {
			s.write(nonNil(entries))
			return
		}
		s.printer.History(entries)
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show [n]",
	Short: "Show one past analysis, picked interactively when n is omitted",
	Args:  cobra.MaximumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		s, entries := loadHistory()
		defer s.close()

		if err := s.showHistoryEntry(entries, args); err != nil {
			s.fatal("choosing history entry", err)
		}
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all past analyses",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		s := newSession(context.Background())
		defer s.close()

		if yes, _ := cmd.Flags().GetBool("yes"); !yes && !confirm("Usunąć całą historię") {
			s.logger.Info("exiting", zap.String("reason", "not confirmed"))
			return
		}

		store, err := s.historyStore()
		if err != nil {
			s.fatal("opening history", err)
		}
		if err := store.Clear(s.ctx); err != nil {
			s.fatal("clearing history", err)
		}
		s.logger.Info("history cleared")
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyClearCmd)

	historyClearCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation")
}

func loadHistory() (*session, []history.Entry) {
	s := newSession(context.Background())

	store, err := s.historyStore()
	if err != nil {
		s.fatal("opening history", err)
	}

	entries, err := store.LoadAll(s.ctx)
	if err != nil {
		s.fatal("reading history", err)
	}
	return s, entries
}

// showHistoryEntry renders the entry picked by args. An empty history
// renders as an empty list.
func (s *session) showHistoryEntry(entries []history.Entry, args []string) error {
	if len(entries) == 0 {
		if s.structured() {
			s.write(nonNil(entries))
			return nil
		}
		s.printer.History(entries)
		return nil
	}

	idx, err := pickEntry(entries, args)
	if err != nil {
		return err
	}

	if s.structured() {
		s.write(entries[idx])
		return nil
	}
	s.printer.HistoryEntry(entries[idx])
	return nil
}

func nonNil(entries []history.Entry) []history.Entry {
	if entries == nil {
		return []history.Entry{}
	}
	return entries
}

// pickEntry resolves the 1-based index argument or asks interactively.
func pickEntry(entries []history.Entry, args []string) (int, error) {
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > len(entries) {
			return 0, fmt.Errorf("entry must be a number between 1 and %d, got %q", len(entries), args[0])
		}
		return n - 1, nil
	}

	items := make([]string, 0, len(entries))
	for i, e := range entries {
		items = append(items, render.HistoryLine(i, e))
	}
	return selectOne("Wybierz analizę", items, 0)
}
