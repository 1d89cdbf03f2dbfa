package shared

// Task types
const (
	TypeProcessEventImage = "event:process_image"
	TypeWarmHomeFeed      = "event:warm_home_feed"
)

// Queue names, khớp với priority map của worker
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)

// ProcessEventImagePayload là payload của TypeProcessEventImage
type ProcessEventImagePayload struct {
	EventID string `json:"event_id"`
}

// WarmHomeFeedPayload là payload của TypeWarmHomeFeed
type WarmHomeFeedPayload struct{}
