package common

// Recommendation verdicts.
const (
	RecommendationBuy  = "Buy"
	RecommendationHold = "Hold"
	RecommendationSell = "Sell"
)

// News sentiment labels.
const (
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"
)

// Political risk labels.
const (
	PoliticalRiskNone   = "None"
	PoliticalRiskLow    = "Low"
	PoliticalRiskMedium = "Medium"
	PoliticalRiskHigh   = "High"
)

// News provider selectors.
const (
	NewsProviderAPI = "newsapi"
	NewsProviderRSS = "rss"
)
