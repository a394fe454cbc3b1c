package usecase

import (
	"github.com/totegamma/rerum-inbox"
	"github.com/totegamma/rerum-inbox/internal/domain"
)

// Assemble wraps items into an LDP container without reordering them.
func Assemble(config domain.Config, items []domain.Announcement, q inbox.Query) inbox.Container {
	if items == nil {
		items = []domain.Announcement{}
	}
	return inbox.Container{
		Context:  config.ContextURI,
		Type:     config.ContainerType,
		ID:       inbox.ComposeContainerID(config.ContainerRoot, q.Target),
		Contains: items,
	}
}
