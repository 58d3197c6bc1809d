package telegram

import (
	"fmt"
	"strings"
	"time"

	"sentiment-trading/pkg/utils"
)

// ReportLine is one buy position in a recommendation report.
type ReportLine struct {
	Symbol string
	Shares int
	Price  float64
}

// FormatRecommendationReport renders a run as a MarkdownV2 message.
func FormatRecommendationReport(at time.Time, newsDate string, budget, totalCost float64, sells []string, buys []ReportLine) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📰 *Sentiment recommendation* for news of %s\n", utils.EscapeMarkdownV2(newsDate)))
	b.WriteString(utils.EscapeMarkdownV2(utils.PrettyDate(at)) + "\n\n")

	b.WriteString("🔻 *Sell List:*\n")
	if len(sells) == 0 {
		b.WriteString("\\-\n")
	}
	for _, s := range sells {
		b.WriteString(fmt.Sprintf("• %s\n", utils.EscapeMarkdownV2(s)))
	}

	b.WriteString("\n🟢 *Buy List:*\n")
	if len(buys) == 0 {
		b.WriteString("\\-\n")
	}
	for _, l := range buys {
		line := fmt.Sprintf("%s: %d shares @ %.2f", l.Symbol, l.Shares, l.Price)
		b.WriteString("• " + utils.EscapeMarkdownV2(line) + "\n")
	}

	b.WriteString("\n" + utils.EscapeMarkdownV2(fmt.Sprintf("💰 Cost %.2f of budget %.2f", totalCost, budget)))
	return b.String()
}

func FormatErrorAlertMessage(at time.Time, errType string, errMsg string) string {
	return fmt.Sprintf("📛 *ERROR ALERT*\n%s\n🔧 %s\n⚠️ %s",
		utils.EscapeMarkdownV2(utils.PrettyDate(at)),
		utils.EscapeMarkdownV2(errType),
		utils.EscapeMarkdownV2(errMsg),
	)
}
