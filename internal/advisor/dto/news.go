package dto

// GetNewsParam carries the query inputs for the news fetcher.
type GetNewsParam struct {
	Symbol      string
	CompanyName string
}

// NewsAPIResponse mirrors the keyed news search API response.
type NewsAPIResponse struct {
	Status       string `json:"status"`
	TotalResults int    `json:"totalResults"`
	Code         string `json:"code"`
	Message      string `json:"message"`
	Articles     []struct {
		Title       string `json:"title"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}
