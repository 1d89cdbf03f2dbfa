package model

// Mode là hình thức tổ chức event
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
	ModeHybrid  Mode = "hybrid"
)

func (m Mode) IsValid() bool {
	switch m {
	case ModeOnline, ModeOffline, ModeHybrid:
		return true
	}
	return false
}

const (
	DefaultHomeFeedLimit = 12
	DefaultSimilarLimit  = 3
	MaxListLimit         = 100

	// Cache keys
	CacheKeyRecentPrefix  = "events:recent:"
	CacheKeyRecentPattern = "events:recent:*"
)

// Field names, dùng cho ValidationError và ChangeSet
const (
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldDescription = "description"
	FieldOverview    = "overview"
	FieldImage       = "image"
	FieldThumbnail   = "thumbnail"
	FieldVenue       = "venue"
	FieldLocation    = "location"
	FieldDate        = "date"
	FieldTime        = "time"
	FieldMode        = "mode"
	FieldAudience    = "audience"
	FieldAgenda      = "agenda"
	FieldOrganizer   = "organizer"
	FieldTags        = "tags"
)
