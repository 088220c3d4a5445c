package feed

// Channel is one configured video feed source.
type Channel struct {
	Name string `yaml:"name" json:"name"`
	ID   string `yaml:"id" json:"id"`
}

// Video is the normalized record extracted from one feed entry.
// An empty VideoID marks the record as unique for deduplication.
type Video struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
	Published string `json:"published"` // as found in the feed, may be empty
	Channel   string `json:"channel"`
	VideoID   string `json:"videoId"`
}

// Placeholders used when a feed entry lacks the corresponding field.
const (
	NoTitle        = "[No Title]"
	UnknownChannel = "Unknown Channel"
)

const (
	DefaultMaxItems = 5

	watchURLFormat     = "https://www.youtube.com/watch?v=%s"
	thumbnailURLFormat = "https://i.ytimg.com/vi/%s/hqdefault.jpg"
)

// TechChannels is the built-in channel list used when no channels file is configured.
var TechChannels = []Channel{
	{Name: "Mrwhosetheboss", ID: "UC-lHJZR3Gqxm24_Vd_AJ5Yw"},
	{Name: "Linus Tech Tips", ID: "UCsTcErHg8oDvUnTzoqsYeNw"},
	{Name: "The Verge", ID: "UC1tVU8H153ZFO9eRsxdJlhA"},
	{Name: "MKBHD", ID: "UCBJycsmduvYEL83R_U4JriQ"},
	{Name: "Lawrence Systems", ID: "UCHkYOD-3fZbuGhwsADBd9ZQ"},
	{Name: "TechChurch", ID: "UCWFKCr40YwOZQx8FHU_ZqqQ"},
}
