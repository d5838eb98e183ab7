package cmd

import (
	"context"
	"fmt"

	"github.com/spigell/cv-analyzer/internal/contact"

	"github.com/spf13/cobra"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send a message to the service team",
	Run: func(cmd *cobra.Command, _ []string) {
		sendContact(cmd)
	},
}

func init() {
	rootCmd.AddCommand(contactCmd)

	contactCmd.Flags().String("name", "", "your name (required)")
	contactCmd.Flags().String("email", "", "your email (required)")
	contactCmd.Flags().String("message", "", "the message (required)")
	contactCmd.Flags().String("message-file", "", "read the message from a file, - for stdin")
	contactCmd.Flags().Bool("consent", false, "consent to processing your data to handle the request (required)")
	contactCmd.Flags().String("website", "", "")
	contactCmd.Flags().MarkHidden("website")
}

func sendContact(cmd *cobra.Command) {
	s := newSession(context.Background())
	defer s.close()

	flags := cmd.Flags()
	form := &contact.Form{}
	form.Name, _ = flags.GetString("name")
	form.Email, _ = flags.GetString("email")
	form.Website, _ = flags.GetString("website")
	form.Consent, _ = flags.GetBool("consent")

	message, _ := flags.GetString("message")
	messageFile, _ := flags.GetString("message-file")

	var err error
	if form.Message, err = readText(message, messageFile); err != nil {
		s.fatal("reading message", err)
	}

	if err := contact.NewSender(s.client, s.logger).Send(s.ctx, form); err != nil {
		s.fail("sending message failed", err, contact.GenericFailureMessage)
	}

	fmt.Println(contact.SuccessMessage)
}
