package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/pkg/common"
)

const rsiPeriod = 14

// StockAnalyzer turns a snapshot and news digest into qualitative comments
// and a final verdict. Every method is a pure function of its inputs; the
// thresholds come from configuration.
type StockAnalyzer struct {
	cfg *config.Analyzer
}

// NewStockAnalyzer creates a new StockAnalyzer.
func NewStockAnalyzer(cfg *config.Analyzer) *StockAnalyzer {
	return &StockAnalyzer{cfg: cfg}
}

// Analyze builds the full analysis document for one request.
func (a *StockAnalyzer) Analyze(snapshot *dto.StockSnapshot, digest *dto.NewsDigest) *dto.StockAnalysisResponse {
	resp := &dto.StockAnalysisResponse{
		Symbol:        snapshot.Symbol,
		Name:          snapshot.Name,
		CurrentPrice:  snapshot.CurrentPrice,
		TargetPrice:   snapshot.TargetPrice,
		PERatio:       snapshot.PERatio,
		EPS:           snapshot.EPS,
		DividendYield: snapshot.DividendYield,
		Beta:          snapshot.Beta,
		DebtToEquity:  snapshot.DebtToEquity,
		ROE:           snapshot.ROE,
		RevenueYoY:    snapshot.RevenueGrowth,
		FreeCashflow:  snapshot.FreeCashflow,
		EVToEBITDA:    snapshot.EVToEBITDA,
		PriceToBook:   snapshot.PriceToBook,
	}

	resp.MarketCap = FormatMarketCap(snapshot.MarketCap)
	resp.PEComment = a.PEComment(snapshot.PERatio)
	resp.EPSComment = a.EPSComment(snapshot.EPS)
	resp.DividendComment = a.DividendComment(snapshot.DividendYield)
	resp.MarketCapComment = a.MarketCapComment(snapshot.MarketCap)
	resp.TrendComment = a.TrendComment(snapshot.History)

	resp.TargetDiff = TargetDiff(snapshot.TargetPrice, snapshot.CurrentPrice)
	resp.TargetComment = TargetComment(resp.TargetDiff)

	headlines := digest.Headlines
	resp.RecentHeadlines = headlines
	if resp.RecentHeadlines == nil {
		resp.RecentHeadlines = []string{}
	}
	resp.PoliticalRisk = a.PoliticalRisk(headlines)
	resp.NewsSentiment = a.Sentiment(headlines)

	resp.Recommendation = a.Recommend(snapshot.PERatio, snapshot.EPS, resp.PoliticalRisk, resp.NewsSentiment)
	resp.RecommendationReason = strings.Join([]string{
		"P/E: " + resp.PEComment,
		"EPS: " + resp.EPSComment,
		"Political risk: " + resp.PoliticalRisk,
		"News sentiment: " + resp.NewsSentiment,
	}, "; ")

	resp.KPISummary = a.KPISummary(snapshot)
	resp.SupportLevel, resp.ResistanceLevel = SupportResistance(snapshot.History)
	resp.MA50 = MovingAverage(snapshot.History, 50)
	resp.MA200 = MovingAverage(snapshot.History, 200)
	resp.RSI = RelativeStrengthIndex(snapshot.History, rsiPeriod)
	resp.Volatility = AnnualizedVolatility(snapshot.History)
	resp.Drawdown = MaxDrawdown(snapshot.History)
	resp.ValueAtRisk = ValueAtRisk(snapshot.History)

	resp.NextEarnings = "Not announced"
	if snapshot.NextEarnings != nil {
		resp.NextEarnings = snapshot.NextEarnings.Format("2006-01-02")
	}
	resp.NextDividend = "N/A"
	if snapshot.ExDividend != nil {
		resp.NextDividend = snapshot.ExDividend.Format("2006-01-02")
	}

	return resp
}

// PEComment buckets the P/E ratio into valuation bands.
func (a *StockAnalyzer) PEComment(pe *float64) string {
	switch {
	case pe == nil:
		return "P/E unknown"
	case *pe < a.cfg.PEUndervalued:
		return "Low – undervalued"
	case *pe <= a.cfg.PEOvervalued:
		return "Moderate – fair value"
	default:
		return "High – overvalued"
	}
}

// EPSComment buckets EPS into profitability bands.
func (a *StockAnalyzer) EPSComment(eps *float64) string {
	switch {
	case eps == nil:
		return "EPS unknown"
	case *eps > a.cfg.EPSStrong:
		return "Strong earnings"
	case *eps > a.cfg.EPSModerate:
		return "Moderate earnings"
	default:
		return "Weak or negative earnings"
	}
}

// DividendComment buckets the yield into income-attractiveness bands.
func (a *StockAnalyzer) DividendComment(yield *float64) string {
	switch {
	case yield == nil || *yield == 0:
		return "No dividend"
	case *yield >= a.cfg.DividendHigh:
		return fmt.Sprintf("High yield (%.2f%%) – attractive income", *yield)
	case *yield >= a.cfg.DividendModerate:
		return fmt.Sprintf("Moderate yield (%.2f%%)", *yield)
	default:
		return fmt.Sprintf("Low yield (%.2f%%)", *yield)
	}
}

// MarketCapComment buckets capitalization into size bands.
func (a *StockAnalyzer) MarketCapComment(cap *float64) string {
	switch {
	case cap == nil || *cap <= 0:
		return "Market cap unknown"
	case *cap >= a.cfg.LargeCap:
		return "Large cap – established, typically stable"
	case *cap >= a.cfg.MidCap:
		return "Mid cap"
	default:
		return "Small cap – higher volatility"
	}
}

// FormatMarketCap renders a raw capitalization with a magnitude suffix.
func FormatMarketCap(cap *float64) string {
	switch {
	case cap == nil || *cap <= 0:
		return "N/A"
	case *cap >= 1e12:
		return fmt.Sprintf("%.2fT", *cap/1e12)
	case *cap >= 1e9:
		return fmt.Sprintf("%.2fB", *cap/1e9)
	default:
		return fmt.Sprintf("%.2fM", *cap/1e6)
	}
}

// TrendComment describes the price change over the trailing window.
func (a *StockAnalyzer) TrendComment(history []float64) string {
	window := a.cfg.TrendWindowDays
	if len(history) < 2 {
		return "No recent price history available"
	}
	if len(history) < window {
		window = len(history)
	}
	recent := history[len(history)-window:]
	oldest, newest := recent[0], recent[len(recent)-1]
	if oldest == 0 {
		return "No recent price history available"
	}
	change := (newest - oldest) / oldest * 100
	switch {
	case change > a.cfg.FlatBand:
		return fmt.Sprintf("Price rose %.1f%% over the past month", change)
	case change < -a.cfg.FlatBand:
		return fmt.Sprintf("Price fell %.1f%% over the past month", -change)
	default:
		return "Price stayed roughly flat over the past month"
	}
}

// TargetDiff returns the analyst target upside in percent, rounded to one
// decimal, or nil when either price is unknown.
func TargetDiff(target *float64, current float64) *float64 {
	if target == nil || current == 0 {
		return nil
	}
	diff := math.Round((*target-current)/current*1000) / 10
	return &diff
}

// TargetComment turns the target diff into a sentence.
func TargetComment(diff *float64) string {
	switch {
	case diff == nil:
		return "No analyst target available"
	case *diff >= 0:
		return fmt.Sprintf("Analysts expect %.1f%% upside.", *diff)
	default:
		return fmt.Sprintf("%.1f%% downside potential.", -*diff)
	}
}

// PoliticalRisk scans headlines for regulatory and geopolitical keywords and
// returns a coarse label based on total hits.
func (a *StockAnalyzer) PoliticalRisk(headlines []string) string {
	hits := 0
	for _, headline := range headlines {
		lower := strings.ToLower(headline)
		for _, keyword := range a.cfg.PoliticalKeywords {
			if containsKeyword(lower, keyword) {
				hits++
			}
		}
	}
	switch {
	case hits == 0:
		return common.PoliticalRiskNone
	case hits == 1:
		return common.PoliticalRiskLow
	case hits <= 3:
		return common.PoliticalRiskMedium
	default:
		return common.PoliticalRiskHigh
	}
}

// Sentiment returns the majority polarity of the headline keywords, Neutral
// on a tie or when there are no headlines.
func (a *StockAnalyzer) Sentiment(headlines []string) string {
	positives, negatives := 0, 0
	for _, headline := range headlines {
		lower := strings.ToLower(headline)
		for _, keyword := range a.cfg.PositiveKeywords {
			if containsKeyword(lower, keyword) {
				positives++
			}
		}
		for _, keyword := range a.cfg.NegativeKeywords {
			if containsKeyword(lower, keyword) {
				negatives++
			}
		}
	}
	switch {
	case positives > negatives:
		return common.SentimentPositive
	case negatives > positives:
		return common.SentimentNegative
	default:
		return common.SentimentNeutral
	}
}

// containsKeyword matches a keyword (or a multi-word phrase) on word
// boundaries, so "ban" does not hit "bank" and "sec" does not hit "second".
// Both arguments must already be lowercase.
func containsKeyword(text, keyword string) bool {
	if keyword == "" {
		return false
	}
	for start := 0; start <= len(text)-len(keyword); {
		idx := strings.Index(text[start:], keyword)
		if idx < 0 {
			return false
		}
		i := start + idx
		j := i + len(keyword)
		if (i == 0 || !isWordByte(text[i-1])) && (j == len(text) || !isWordByte(text[j])) {
			return true
		}
		start = i + 1
	}
	return false
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// Recommend combines the valuation bands with the news-derived labels into
// the final verdict. High political risk or negative sentiment dominates.
func (a *StockAnalyzer) Recommend(pe, eps *float64, politicalRisk, sentiment string) string {
	if politicalRisk == common.PoliticalRiskHigh || sentiment == common.SentimentNegative {
		return common.RecommendationSell
	}
	if pe == nil {
		return common.RecommendationHold
	}
	if *pe > a.cfg.PEOvervalued {
		return common.RecommendationSell
	}
	if *pe < a.cfg.PEUndervalued && eps != nil && *eps > 0 {
		return common.RecommendationBuy
	}
	return common.RecommendationHold
}

// KPISummary renders the graded metric bullets.
func (a *StockAnalyzer) KPISummary(snapshot *dto.StockSnapshot) string {
	lines := []string{
		gradeLowerBetter(snapshot.PERatio, a.cfg.PEUndervalued, a.cfg.PEOvervalued) +
			fmt.Sprintf(" P/E Ratio: %s → Lower = cheaper, sector-relative.", formatMetric(snapshot.PERatio)),
		gradeHigherBetter(snapshot.EPS, a.cfg.EPSStrong, a.cfg.EPSModerate) +
			fmt.Sprintf(" EPS: %s → Company profit per share.", formatMetric(snapshot.EPS)),
		gradeHigherBetter(snapshot.DividendYield, a.cfg.DividendHigh, a.cfg.DividendModerate) +
			fmt.Sprintf(" Dividend Yield: %s%% → Passive income return.", formatMetric(snapshot.DividendYield)),
		gradeLowerBetter(snapshot.DebtToEquity, 50, 100) +
			fmt.Sprintf(" Debt/Equity: %s → Lower = less risk.", formatMetric(snapshot.DebtToEquity)),
		gradeHigherBetter(snapshot.ROE, 15, 5) +
			fmt.Sprintf(" Return on Equity: %s%% → Profitability efficiency.", formatMetric(snapshot.ROE)),
		gradeLowerBetter(snapshot.PriceToBook, 1.5, 3) +
			fmt.Sprintf(" P/B Ratio: %s → Price vs. book value.", formatMetric(snapshot.PriceToBook)),
	}
	return strings.Join(lines, "\n")
}

func formatMetric(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2f", *v)
}

func gradeHigherBetter(v *float64, good, bad float64) string {
	switch {
	case v == nil:
		return "⚪"
	case *v >= good:
		return "🟢"
	case *v <= bad:
		return "🔴"
	default:
		return "🟡"
	}
}

func gradeLowerBetter(v *float64, good, bad float64) string {
	switch {
	case v == nil:
		return "⚪"
	case *v <= good:
		return "🟢"
	case *v >= bad:
		return "🔴"
	default:
		return "🟡"
	}
}

// SupportResistance returns the period low and high formatted as prices, or
// "N/A" when no history is available.
func SupportResistance(history []float64) (string, string) {
	if len(history) == 0 {
		return "N/A", "N/A"
	}
	low, high := history[0], history[0]
	for _, price := range history[1:] {
		if price < low {
			low = price
		}
		if price > high {
			high = price
		}
	}
	return fmt.Sprintf("$%.2f", low), fmt.Sprintf("$%.2f", high)
}

// MovingAverage returns the mean of the trailing n closes, nil when the
// history is shorter than n.
func MovingAverage(history []float64, n int) *float64 {
	if n <= 0 || len(history) < n {
		return nil
	}
	sum := 0.0
	for _, price := range history[len(history)-n:] {
		sum += price
	}
	ma := round2(sum / float64(n))
	return &ma
}

// RelativeStrengthIndex computes Wilder's RSI over the trailing period.
func RelativeStrengthIndex(history []float64, period int) *float64 {
	if len(history) < period+1 {
		return nil
	}
	gains, losses := 0.0, 0.0
	for i := len(history) - period; i < len(history); i++ {
		delta := history[i] - history[i-1]
		if delta > 0 {
			gains += delta
		} else {
			losses -= delta
		}
	}
	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)
	if avgLoss == 0 {
		v := 100.0
		return &v
	}
	rs := avgGain / avgLoss
	rsi := round2(100 - 100/(1+rs))
	return &rsi
}

// AnnualizedVolatility is the standard deviation of daily returns scaled to
// a 252-day year, in percent.
func AnnualizedVolatility(history []float64) *float64 {
	returns := dailyReturns(history)
	if len(returns) < 2 {
		return nil
	}
	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))
	variance := 0.0
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns) - 1)
	vol := round2(math.Sqrt(variance) * math.Sqrt(252) * 100)
	return &vol
}

// ValueAtRisk is the 5th percentile of daily returns, in percent. A value of
// -2.5 reads as "on the worst 5% of days the stock lost 2.5% or more".
func ValueAtRisk(history []float64) *float64 {
	returns := dailyReturns(history)
	if len(returns) < 2 {
		return nil
	}
	v := round2(percentile(returns, 5) * 100)
	return &v
}

// percentile interpolates linearly between the closest ranks.
func percentile(values []float64, p float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// MaxDrawdown is the worst peak-to-trough decline over the history, in
// percent (negative).
func MaxDrawdown(history []float64) *float64 {
	if len(history) < 2 {
		return nil
	}
	peak := history[0]
	worst := 0.0
	for _, price := range history {
		if price > peak {
			peak = price
		}
		if peak > 0 {
			dd := (price/peak - 1) * 100
			if dd < worst {
				worst = dd
			}
		}
	}
	worst = round2(worst)
	return &worst
}

func dailyReturns(history []float64) []float64 {
	if len(history) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(history)-1)
	for i := 1; i < len(history); i++ {
		if history[i-1] == 0 {
			continue
		}
		returns = append(returns, history[i]/history[i-1]-1)
	}
	return returns
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
