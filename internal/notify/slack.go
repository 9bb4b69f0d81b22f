package notify

import (
	"context"
	"fmt"
	"os"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// SlackNotifier posts rotation notifications to a single Slack channel.
type SlackNotifier struct {
	client    *slack.Client
	channelID string
	log       *zap.Logger
}

// NewSlack creates a notifier for the given channel.
func NewSlack(client *slack.Client, channelID string, log *zap.Logger) *SlackNotifier {
	return &SlackNotifier{
		client:    client,
		channelID: channelID,
		log:       log,
	}
}

// Post uploads the rendered image and sends one message with a colored
// attachment embedding it. Delivery errors are returned to the caller so
// the scheduler can observe them.
func (n *SlackNotifier) Post(ctx context.Context, msg Message) error {
	info, err := os.Stat(msg.ImagePath)
	if err != nil {
		return fmt.Errorf("stating image %s: %w", msg.ImagePath, err)
	}

	file, err := n.client.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
		Channel:  n.channelID,
		File:     msg.ImagePath,
		Filename: msg.Filename,
		FileSize: int(info.Size()),
		Title:    msg.Title,
	})
	if err != nil {
		return fmt.Errorf("failed to upload image: %w", err)
	}

	uploaded, _, _, err := n.client.GetFileInfoContext(ctx, file.ID, 0, 0)
	if err != nil {
		return fmt.Errorf("failed to resolve uploaded file: %w", err)
	}

	attachment := slack.Attachment{
		Color:    msg.Color,
		Title:    msg.Title,
		Text:     msg.Body,
		Footer:   msg.Footer,
		ImageURL: uploaded.Permalink,
	}

	_, _, err = n.client.PostMessageContext(ctx, n.channelID,
		slack.MsgOptionAttachments(attachment),
		slack.MsgOptionAsUser(false),
	)
	if err != nil {
		return fmt.Errorf("failed to send Slack message: %w", err)
	}

	n.log.Info("notification sent", zap.String("channel", n.channelID))
	return nil
}
