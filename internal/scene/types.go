package scene

// identifies one of the hand-authored scene templates
type Kind int

const (
	KindOffice Kind = iota // default when nothing matches
	KindInfrastructure
	KindSocialMedia
	KindOpposition
)

// canvas size shared by every template
const (
	CanvasWidth  = 800
	CanvasHeight = 600
)

// caption layout budget
const (
	MaxCaptionChars = 70
	MaxCaptionLines = 2
)

func (k Kind) String() string {
	switch k {
	case KindInfrastructure:
		return "infrastructure"
	case KindSocialMedia:
		return "social_media"
	case KindOpposition:
		return "opposition"
	default:
		return "office"
	}
}

// keywordGroup maps a set of lowercase substrings to a scene
type keywordGroup struct {
	kind     Kind
	keywords []string
}

// checked in order, first match wins
var keywordGroups = []keywordGroup{
	{
		kind: KindInfrastructure,
		keywords: []string{
			"pothole", "infrastructure", "bridge", "flyover", "highway",
			"traffic", "waterlogging", "construction", "road repair",
		},
	},
	{
		kind: KindSocialMedia,
		keywords: []string{
			"social media", "influencer", "instagram", "twitter", "tweet",
			"viral", "selfie", "followers", "youtube", "hashtag", "reel",
		},
	},
	{
		kind: KindOpposition,
		keywords: []string{
			"opposition", "policy", "policies", "parliament", "election",
			"manifesto", "debate", "walkout", "protest", "coalition",
		},
	},
}
