package transfer

type GenerateRequest struct {
	ProductName    string   `json:"product_name"`
	Description    string   `json:"description"`
	TargetAudience string   `json:"target_audience"`
	KeyFeatures    []string `json:"key_features"`
	TonePreference string   `json:"tone_preference"`
	CustomTone     string   `json:"custom_tone"`
	XHandle        string   `json:"x_handle"`
}

type GenerateResponse struct {
	Tweets []string    `json:"tweets"`
	Stored []TweetInfo `json:"stored"`
}
