package dto

// SentimentDirection selects the sign of sentiment the news API filters on.
type SentimentDirection string

const (
	DirectionPositive SentimentDirection = "gte"
	DirectionNegative SentimentDirection = "lte"
)

func (d SentimentDirection) Valid() bool {
	return d == DirectionPositive || d == DirectionNegative
}

// MarketauxNewsResponse is the body of GET /v1/news/all.
type MarketauxNewsResponse struct {
	Meta struct {
		Found    int `json:"found"`
		Returned int `json:"returned"`
		Limit    int `json:"limit"`
		Page     int `json:"page"`
	} `json:"meta"`
	Data  []MarketauxArticle `json:"data"`
	Error *MarketauxError    `json:"error,omitempty"`
}

type MarketauxArticle struct {
	UUID        string            `json:"uuid"`
	Title       string            `json:"title"`
	URL         string            `json:"url"`
	PublishedAt string            `json:"published_at"`
	Entities    []MarketauxEntity `json:"entities"`
}

type MarketauxEntity struct {
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	Country        string  `json:"country"`
	MatchScore     float64 `json:"match_score"`
	SentimentScore float64 `json:"sentiment_score"`
}

type MarketauxError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
