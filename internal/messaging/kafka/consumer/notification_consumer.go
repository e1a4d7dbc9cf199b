package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-lms/internal/events"
	"go-lms/internal/notify"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeRequestNotifications turns request lifecycle events into e-mails.
// Delivery is fire-and-forget: a mail failure is logged and the message is
// committed anyway, so a dead SMTP relay can never wedge the stream.
func ConsumeRequestNotifications(
	ctx context.Context,
	reader *kafkago.Reader,
	mailer notify.Mailer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.request_notification")
	log.Info("request notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("request notification consumer stopped")
				return
			}
			log.Error("fetch notification message failed", zap.Error(err))
			continue
		}

		var event events.RequestNotificationEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode notification event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if event.RecipientEmail == "" {
			log.Warn("notification event without recipient, skipping",
				zap.String("request_id", event.RequestID),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		subject, body := renderNotification(event)
		if err := mailer.Send(ctx, event.RecipientEmail, subject, body); err != nil {
			log.Error("send notification mail failed",
				zap.String("request_id", event.RequestID),
				zap.String("event_type", event.EventType),
				zap.Error(err),
			)
		} else {
			log.Info("notification mail sent",
				zap.String("request_id", event.RequestID),
				zap.String("event_type", event.EventType),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit notification message failed", zap.Error(err))
		}
	}
}

func renderNotification(event events.RequestNotificationEvent) (subject, body string) {
	reviewer := event.ReviewerName
	if reviewer == "" {
		reviewer = "the review board"
	}

	switch event.EventType {
	case events.TypeRequestDeleted:
		subject = fmt.Sprintf("Leave Request %s Deleted", event.RequestNumber)
		body = fmt.Sprintf(
			"<h2>Hello %s,</h2><p>Your leave request <strong>%s</strong> was deleted by %s.</p><br/><p>Regards,<br/>%s</p>",
			event.RecipientName, event.RequestNumber, reviewer, reviewer,
		)
	default:
		subject = fmt.Sprintf("Leave Request %s", event.Status)
		comment := ""
		if event.Comment != "" {
			comment = fmt.Sprintf("<p><strong>Comment:</strong> %s</p>", event.Comment)
		}
		body = fmt.Sprintf(
			"<h2>Hello %s,</h2><p>Your leave request <strong>%s</strong> has been <strong>%s</strong>.</p>%s<br/><p>Regards,<br/>%s</p>",
			event.RecipientName, event.RequestNumber, event.Status, comment, reviewer,
		)
	}

	return subject, body
}
