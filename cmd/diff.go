package cmd

import (
	"context"
	"fmt"

	"github.com/spigell/cv-analyzer/internal/api"
	"github.com/spigell/cv-analyzer/internal/jddiff"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare 2-5 job descriptions",
}

var diffLinksCmd = &cobra.Command{
	Use:   "links",
	Short: "Compare job postings by link, optionally scoring a CV against each",
	Example: `  cv-analyzer diff links --url https://example.com/1 --url https://example.com/2 --cv cv.pdf --csv .`,
	Run: func(cmd *cobra.Command, _ []string) {
		diffLinks(cmd)
	},
}

var diffTextCmd = &cobra.Command{
	Use:   "text",
	Short: "Compare pasted job descriptions separated by lines of ---",
	Example: `  cv-analyzer diff text --file offers.txt --labels "$(printf 'Firma A\nFirma B')"
  pbpaste | cv-analyzer diff text --copy`,
	Run: func(cmd *cobra.Command, _ []string) {
		diffText(cmd)
	},
}

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.AddCommand(diffLinksCmd, diffTextCmd)

	diffCmd.PersistentFlags().String("csv", "", "write the requirement matrix to DIR/jd_diff.csv")
	diffCmd.PersistentFlags().Bool("copy", false, "copy the requirement matrix as csv to the clipboard")
	diffCmd.PersistentFlags().Bool("matrix", false, "print the requirement matrix")

	diffLinksCmd.Flags().StringArray("url", nil, "job posting link, may be repeated")
	diffLinksCmd.Flags().String("urls", "", "job posting links, one per line")
	diffLinksCmd.Flags().String("cv", "", "optional cv file (pdf or docx) to compute fit scores")

	diffTextCmd.Flags().StringP("file", "f", "-", "file with job descriptions separated by lines of ---, - for stdin")
	diffTextCmd.Flags().String("labels", "", "job labels, one per line")
	diffTextCmd.Flags().String("labels-file", "", "read job labels from a file")
}

func diffLinks(cmd *cobra.Command) {
	s := newSession(context.Background())
	defer s.close()

	flags := cmd.Flags()
	urls, _ := flags.GetStringArray("url")
	urlBlock, _ := flags.GetString("urls")
	cvPath, _ := flags.GetString("cv")

	comparer := jddiff.NewComparer(s.client, s.events, s.logger)

	diff, err := comparer.CompareLinks(s.ctx, joinURLs(urls, urlBlock), s.loadCV(cvPath))
	if err != nil {
		s.fail("comparison failed", err, jddiff.GenericFailureMessage)
	}

	s.showDiff(cmd, diff)
}

func diffText(cmd *cobra.Command) {
	s := newSession(context.Background())
	defer s.close()

	flags := cmd.Flags()
	file, _ := flags.GetString("file")
	labels, _ := flags.GetString("labels")
	labelsFile, _ := flags.GetString("labels-file")

	text, err := readText("", file)
	if err != nil {
		s.fatal("reading job descriptions", err)
	}
	labels, err = readText(labels, labelsFile)
	if err != nil {
		s.fatal("reading labels", err)
	}

	comparer := jddiff.NewComparer(s.client, s.events, s.logger)

	diff, err := comparer.CompareText(s.ctx, text, labels)
	if err != nil {
		s.fail("comparison failed", err, jddiff.GenericFailureMessage)
	}

	s.showDiff(cmd, diff)
}

func (s *session) showDiff(cmd *cobra.Command, diff *api.Diff) {
	matrix := jddiff.BuildMatrix(diff)

	if s.structured() {
		s.write(diff)
	} else {
		s.printer.Diff(diff)
		if show, _ := cmd.Flags().GetBool("matrix"); show {
			s.printer.Matrix(matrix)
		}
	}

	exporter := &jddiff.Exporter{}

	if copyCSV, _ := cmd.Flags().GetBool("copy"); copyCSV {
		copied, err := exporter.Copy(matrix)
		if err != nil {
			s.logger.Warn("copying matrix failed", zap.Error(err))
		} else if copied {
			s.logger.Info("requirement matrix copied to clipboard")
		}
	}

	if dir, _ := cmd.Flags().GetString("csv"); dir != "" {
		path, err := exporter.Download(matrix, dir)
		if err != nil {
			s.fatal("exporting matrix", err)
		}
		if path != "" {
			s.logger.Info("requirement matrix saved", zap.String("filename", path), zap.String("content_type", jddiff.ContentType))
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), "Brak macierzy do eksportu.")
		}
	}
}
