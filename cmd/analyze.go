package cmd

import (
	"context"
	"fmt"

	"github.com/spigell/cv-analyzer/internal/analyzer"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const industryAuto = "Wykryj automatycznie"

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a CV against one or more job postings",
	Example: `  cv-analyzer analyze --cv cv.pdf --url https://example.com/job/1
  cv-analyzer analyze --cv cv.docx --plan pro --urls "$(cat links.txt)" --industry IT`,
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("cv", "", "cv file (pdf or docx)")
	analyzeCmd.Flags().StringArray("url", nil, "job posting link, may be repeated")
	analyzeCmd.Flags().String("urls", "", "job posting links, one per line")
	analyzeCmd.Flags().String("plan", analyzer.PlanFree, "plan: free (1 link) or pro (up to 5 links)")
	analyzeCmd.Flags().String("description", "", "additional description, up to 1000 words")
	analyzeCmd.Flags().String("description-file", "", "read the additional description from a file, - for stdin")
	analyzeCmd.Flags().String("industry", "", "industry of the postings, detected automatically when empty")
	analyzeCmd.Flags().Bool("pick-industry", false, "choose the industry interactively")
	analyzeCmd.Flags().Bool("all-errors", false, "report every validation error instead of the first one")
}

func analyze(cmd *cobra.Command) {
	s := newSession(context.Background())
	defer s.close()

	flags := cmd.Flags()
	cvPath, _ := flags.GetString("cv")
	urls, _ := flags.GetStringArray("url")
	urlBlock, _ := flags.GetString("urls")
	plan, _ := flags.GetString("plan")
	description, _ := flags.GetString("description")
	descriptionFile, _ := flags.GetString("description-file")
	industry, _ := flags.GetString("industry")
	allErrors, _ := flags.GetBool("all-errors")

	description, err := readText(description, descriptionFile)
	if err != nil {
		s.fatal("reading description", err)
	}

	if pick, _ := flags.GetBool("pick-industry"); pick && industry == "" {
		items := append([]string{industryAuto}, analyzer.Industries...)
		idx, err := selectOne("Branża", items, 0)
		if err != nil {
			s.fatal("exiting", err)
		}
		if idx > 0 {
			industry = items[idx]
		}
	}

	form := &analyzer.Form{
		CV:          s.loadCV(cvPath),
		URLs:        joinURLs(urls, urlBlock),
		Plan:        plan,
		Description: description,
		Industry:    industry,
	}

	store, err := s.historyStore()
	if err != nil {
		s.logger.Warn("history is unavailable, the result will not be archived", zap.Error(err))
	}

	service := analyzer.New(s.client, store, s.events, s.logger)
	service.AllErrors = allErrors

	outcome, err := service.Submit(s.ctx, form)
	if err != nil {
		s.fail("analysis failed", err, analyzer.GenericFailureMessage)
	}

	if s.structured() {
		s.write(outcome.Result)
		return
	}

	if outcome.Industry != "" {
		note := ""
		if outcome.AutoDetected {
			note = " (wykryta automatycznie)"
		}
		fmt.Printf("Branża: %s%s\n", outcome.Industry, note)
	}
	s.printer.Analysis(outcome.Result)
}
