package models

// TemplateData is the editable content of the social image template
type TemplateData struct {
	WineName    string `json:"wine_name"`
	Tagline     string `json:"tagline"`
	BadgeText   string `json:"badge_text"`
	RRPPrice    string `json:"rrp_price"`
	OfferPrice  string `json:"offer_price"`
	Quote       string `json:"quote"`
	QuoteAuthor string `json:"quote_author"`
	Score       string `json:"score"`
	Award       string `json:"award"`
	AccentColor string `json:"accent_color"`
	BgImage     string `json:"bg_image,omitempty"`
	BottleImage string `json:"bottle_image,omitempty"`
	Hashtags    string `json:"hashtags"`
}

// ColorOption is a named preset accent color
type ColorOption struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// PostStatus is the lifecycle of a social publish
type PostStatus string

const (
	PostIdle    PostStatus = "idle"
	PostPosting PostStatus = "posting"
	PostSuccess PostStatus = "success"
)

// SocialStatus reports connection and publishing state
type SocialStatus struct {
	Connected      bool       `json:"connected"`
	PostStatus     PostStatus `json:"post_status"`
	IsCustomColor  bool       `json:"is_custom_color"`
	AwardIconCount int        `json:"award_icon_count"`
	Caption        string     `json:"caption"`
}
