package service

import (
	"context"
	"time"

	"sentiment-trading/internal/dto"
	"sentiment-trading/pkg/telegram"
)

// ReportNotifier delivers finished runs and scheduler failures somewhere a
// human will read them.
type ReportNotifier interface {
	NotifyReport(ctx context.Context, result *dto.RecommendationResult) error
	NotifyError(ctx context.Context, errType string, err error) error
}

type MessageSender interface {
	SendMessage(ctx context.Context, chatID int64, message string) error
}

type telegramReportNotifier struct {
	sender MessageSender
	chatID int64
}

func NewTelegramReportNotifier(sender MessageSender, chatID int64) ReportNotifier {
	return &telegramReportNotifier{sender: sender, chatID: chatID}
}

func (n *telegramReportNotifier) NotifyReport(ctx context.Context, result *dto.RecommendationResult) error {
	lines := make([]telegram.ReportLine, 0, len(result.Buys))
	for _, b := range result.Buys {
		lines = append(lines, telegram.ReportLine{Symbol: b.Symbol, Shares: b.Shares, Price: b.Price})
	}
	msg := telegram.FormatRecommendationReport(result.FinishedAt, result.NewsDate, result.Budget, result.TotalCost, result.Sells, lines)
	return n.sender.SendMessage(ctx, n.chatID, msg)
}

func (n *telegramReportNotifier) NotifyError(ctx context.Context, errType string, err error) error {
	return n.sender.SendMessage(ctx, n.chatID, telegram.FormatErrorAlertMessage(time.Now(), errType, err.Error()))
}

type noopReportNotifier struct{}

func NewNoopReportNotifier() ReportNotifier {
	return noopReportNotifier{}
}

func (noopReportNotifier) NotifyReport(context.Context, *dto.RecommendationResult) error { return nil }

func (noopReportNotifier) NotifyError(context.Context, string, error) error { return nil }
