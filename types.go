package inbox

import (
	"github.com/totegamma/rerum-inbox/internal/domain"
)

const (
	DefaultContext       = "http://www.w3.org/ns/ldp"
	DefaultIDRoot        = "http://inbox.rerum.io/id"
	DefaultContainerRoot = "http://inbox.rerum.io/messages"
	DefaultContainerType = "ldp:Container"
)

// Query narrows a container listing. Every field is optional.
type Query struct {
	Target     string `json:"target" query:"target"`
	Type       string `json:"type" query:"type"`
	Motivation string `json:"motivation" query:"motivation"`
}

// Container is the LDP container representation served for GET /messages.
type Container struct {
	Context  string                `json:"@context"`
	Type     string                `json:"@type"`
	ID       string                `json:"@id"`
	Contains []domain.Announcement `json:"contains"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
