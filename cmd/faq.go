package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/cv-analyzer/internal/faq"
	"github.com/spigell/cv-analyzer/internal/render"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const faqExit = "Zakończ"

var faqCmd = &cobra.Command{
	Use:   "faq [query]",
	Short: "Frequently asked questions, filtered by query",
	Example: `  cv-analyzer faq docx
  cv-analyzer faq --open q3
  cv-analyzer faq --jsonld`,
	Run: func(cmd *cobra.Command, args []string) {
		showFAQ(cmd, args)
	},
}

var faqBrowseCmd = &cobra.Command{
	Use:   "browse [query]",
	Short: "Browse the questions interactively, expanding answers on ENTER",
	Run: func(cmd *cobra.Command, args []string) {
		browseFAQ(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(faqCmd)
	faqCmd.AddCommand(faqBrowseCmd)

	faqCmd.PersistentFlags().String("open", "", "item to open, e.g. q3 or #q3")
	faqCmd.Flags().Bool("expand", false, "show every answer")
	faqCmd.Flags().Bool("jsonld", false, "print the schema.org FAQPage document")
}

func openFAQ(cmd *cobra.Command, s *session) (*faq.Accordion, string) {
	items, err := faq.Load()
	if err != nil {
		s.fatal("loading faq", err)
	}

	fragment, _ := cmd.Flags().GetString("open")
	acc := faq.NewAccordion(items, s.events)
	opened := acc.View(fragment)
	if fragment != "" && opened == "" {
		s.logger.Warn("faq item not found", zap.String("open", fragment))
	}
	return acc, opened
}

func showFAQ(cmd *cobra.Command, args []string) {
	s := newSession(context.Background())
	defer s.close()

	acc, opened := openFAQ(cmd, s)
	query := strings.Join(args, " ")
	items := faq.Filter(acc.Items(), query)

	if jsonld, _ := cmd.Flags().GetBool("jsonld"); jsonld {
		doc, err := faq.JSONLD(acc.Items())
		if err != nil {
			s.fatal("rendering faq json-ld", err)
		}
		fmt.Println(string(doc))
		return
	}

	if s.structured() {
		s.write(items)
		return
	}

	isOpen := acc.IsOpen
	if expand, _ := cmd.Flags().GetBool("expand"); expand {
		isOpen = func(string) bool { return true }
	}

	s.printer.FAQ(withFirst(items, opened), isOpen, query)
}

func browseFAQ(cmd *cobra.Command, args []string) {
	s := newSession(context.Background())
	defer s.close()

	acc, opened := openFAQ(cmd, s)
	items := faq.Filter(acc.Items(), strings.Join(args, " "))
	if len(items) == 0 {
		s.printer.FAQ(items, nil, strings.Join(args, " "))
		return
	}

	cursor := faq.Index(items, opened)
	for {
		labels := make([]string, 0, len(items)+1)
		for _, item := range items {
			labels = append(labels, render.FAQMarker(acc.IsOpen(item.ID))+" "+item.Question)
		}
		labels = append(labels, faqExit)

		idx, err := selectOne("Najczęstsze pytania", labels, cursor)
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				return
			}
			s.fatal("exiting", err)
		}
		if idx == len(items) {
			return
		}

		item := items[idx]
		fragment, err := acc.Toggle(item.ID)
		if err != nil {
			s.fatal("toggling faq item", err)
		}
		s.logger.Debug("faq toggled", zap.String("fragment", fragment))

		if acc.IsOpen(item.ID) {
			fmt.Printf("\n%s\n%s\n\n", item.Question, item.Answer)
		}
		cursor = idx
	}
}

// withFirst moves the item with id to the front.
func withFirst(items []faq.Item, id string) []faq.Item {
	if id == "" {
		return items
	}
	out := make([]faq.Item, 0, len(items))
	for _, item := range items {
		if item.ID == id {
			out = append([]faq.Item{item}, out...)
			continue
		}
		out = append(out, item)
	}
	return out
}
