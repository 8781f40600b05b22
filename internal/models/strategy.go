package models

// BrandStrategy is the synthesized 4C strategy. It is stored as one JSON
// blob on Project and never edited in place.
type BrandStrategy struct {
	Positioning        string   `json:"positioning"`
	PurposeStatement   string   `json:"purposeStatement"`
	TargetAudience     string   `json:"targetAudience"`
	Personality        []string `json:"personality"`
	Values             []string `json:"values"`
	ToneOfVoice        string   `json:"toneOfVoice"`
	KeyDifferentiators []string `json:"keyDifferentiators"`
}

// DiscoveryProgress holds per-section completion percentages (0-100).
type DiscoveryProgress struct {
	Basics   int `json:"basics"`
	Business int `json:"business"`
	Market   int `json:"market"`
	Strategy int `json:"strategy"`
	Creative int `json:"creative"`
}
