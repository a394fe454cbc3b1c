package usecase

import (
	"github.com/totegamma/rerum-inbox/internal/domain"
)

// Validate decides whether doc may be created. Only the first failure is
// reported: an identifier is checked before motivation.
func Validate(doc domain.Announcement) error {
	if doc.IsSet(domain.KeyID) {
		return domain.ErrDuplicateIdentifier
	}
	if !doc.IsSet(domain.KeyMotivation) {
		return domain.ErrMissingMotivation
	}
	return nil
}
