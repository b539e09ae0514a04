package domain

// Messages of the synthetic items returned in place of real data.
const (
	MessageNotInitialized = "Issue feed not initialized"
	MessageFetchError     = "An error occurred while retrieving issues"
)

// FeedItem is a single display-ready unit of the feed.
type FeedItem struct {
	Message string `json:"message" yaml:"message"`
	Icon    string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// Envelope wraps feed items for dashboard consumers.
type Envelope struct {
	Data []FeedItem `json:"data" yaml:"data"`
}

// NewFeedItem projects an issue into a feed item.
func NewFeedItem(issue Issue, icon string) FeedItem {
	return FeedItem{
		Message: issue.Message(),
		Icon:    icon,
	}
}

// SyntheticEnvelope returns an envelope holding exactly one fabricated item.
func SyntheticEnvelope(message, icon string) Envelope {
	return Envelope{Data: []FeedItem{{Message: message, Icon: icon}}}
}

// Messages returns the message of every item, in order.
func Messages(items []FeedItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Message)
	}
	return out
}
