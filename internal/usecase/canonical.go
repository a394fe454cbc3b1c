package usecase

import (
	"encoding/json"

	"github.com/totegamma/rerum-inbox/internal/domain"
)

// InjectIfAbsent returns a copy of doc carrying key, keeping any non-empty
// value already present.
func InjectIfAbsent(doc domain.Announcement, key, value string) domain.Announcement {
	if doc.IsSet(key) {
		return doc
	}
	return InjectOrOverwrite(doc, key, value)
}

// InjectOrOverwrite returns a copy of doc where key is set to value and placed
// ahead of the original keys.
func InjectOrOverwrite(doc domain.Announcement, key, value string) domain.Announcement {
	encoded, _ := json.Marshal(value)
	return domain.Announcement{OrderedKVMap: doc.Prepend(key, encoded)}
}
