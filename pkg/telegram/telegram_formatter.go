package telegram

import (
	"fmt"
	"strings"

	"golang-stock-advisor/internal/advisor/dto"
)

// FormatStockAdvisory formats an analysis result into a Markdown message for
// Telegram.
func FormatStockAdvisory(result *dto.StockAnalysisResponse) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📈 *- - - - - %s (%s) - - - - -*\n", result.Name, result.Symbol))

	var verdictIcon string
	switch result.Recommendation {
	case "Buy":
		verdictIcon = "🟢"
	case "Sell":
		verdictIcon = "🔴"
	default:
		verdictIcon = "🟡"
	}
	b.WriteString(fmt.Sprintf("%s *Recommendation:* %s\n", verdictIcon, result.Recommendation))
	b.WriteString(fmt.Sprintf("💬 *Reason:* %s\n", result.RecommendationReason))
	b.WriteString(fmt.Sprintf("💰 *Price:* %.2f (%s)\n", result.CurrentPrice, result.TargetComment))

	var sentimentIcon string
	switch strings.ToLower(result.NewsSentiment) {
	case "positive":
		sentimentIcon = "😊"
	case "negative":
		sentimentIcon = "😟"
	default:
		sentimentIcon = "😐"
	}
	b.WriteString(fmt.Sprintf("%s *Sentiment:* %s\n", sentimentIcon, result.NewsSentiment))
	b.WriteString(fmt.Sprintf("🏛️ *Political risk:* %s\n", result.PoliticalRisk))
	b.WriteString(fmt.Sprintf("📊 *Trend:* %s\n", result.TrendComment))

	if len(result.RecentHeadlines) > 0 {
		b.WriteString("📰 *Headlines:*\n")
		for _, headline := range result.RecentHeadlines {
			b.WriteString(fmt.Sprintf("  • %s\n", headline))
		}
	}

	return b.String()
}
