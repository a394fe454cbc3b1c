package domain

import "time"

const (
	KeyID         = "@id"
	KeyContext    = "@context"
	KeyType       = "@type"
	KeyMotivation = "motivation"
	KeyPublished  = "published"
	KeyTarget     = "target"
)

// PublishedLayout is the textual form of the server assigned timestamp.
const PublishedLayout = time.RFC3339

const (
	SignalChannel = "inbox.announcements"
)
