package cmd

import (
	"context"

	"github.com/spigell/cv-analyzer/internal/api"
	"github.com/spigell/cv-analyzer/internal/star"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var starCmd = &cobra.Command{
	Use:   "star",
	Short: "Turn a situation/task/action/result story into a graded interview answer",
	Example: `  cv-analyzer star --situation "..." --task "..." --action "..." --result "..." --language en --tone professional`,
	Run: func(cmd *cobra.Command, _ []string) {
		coach(cmd)
	},
}

func init() {
	rootCmd.AddCommand(starCmd)

	starCmd.Flags().String("situation", "", "context: where you worked and what the starting point was")
	starCmd.Flags().String("task", "", "the goal or your responsibility")
	starCmd.Flags().String("action", "", "the concrete steps you took")
	starCmd.Flags().String("result", "", "the outcome, ideally with numbers")
	starCmd.Flags().String("role", "", "optional role context")
	starCmd.Flags().String("language", star.LanguagePL, "answer language: pl or en")
	starCmd.Flags().String("tone", star.ToneConcise, "answer tone: concise, professional or enthusiastic")
	starCmd.Flags().String("plan", star.PlanFree, "plan: free or pro")
	starCmd.Flags().Bool("copy", false, "copy the answer to the clipboard")
}

func coach(cmd *cobra.Command) {
	s := newSession(context.Background())
	defer s.close()

	flags := cmd.Flags()
	req := api.StarRequest{}
	req.Situation, _ = flags.GetString("situation")
	req.Task, _ = flags.GetString("task")
	req.Action, _ = flags.GetString("action")
	req.Result, _ = flags.GetString("result")
	req.Role, _ = flags.GetString("role")
	req.Language, _ = flags.GetString("language")
	req.Tone, _ = flags.GetString("tone")
	req.Plan, _ = flags.GetString("plan")

	result, err := star.NewCoach(s.client, s.events, s.logger).Coach(s.ctx, req)
	if err != nil {
		s.fail("star coaching failed", err, star.GenericFailureMessage)
	}

	if s.structured() {
		s.write(result)
	} else {
		s.printer.Star(result)
	}

	if copyAnswer, _ := flags.GetBool("copy"); copyAnswer {
		if err := clipboard.WriteAll(result.Answer); err != nil {
			s.logger.Warn("copying answer failed", zap.Error(err))
			return
		}
		s.logger.Info("answer copied to clipboard")
	}
}
