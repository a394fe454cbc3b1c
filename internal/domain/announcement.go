package domain

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/totegamma/rerum-inbox/internal/utils"
)

// Announcement is an Activity Streams style document. Fields other than the
// ones the inbox stamps are kept verbatim, in their original order.
type Announcement struct {
	utils.OrderedKVMap[json.RawMessage]
}

func ParseAnnouncement(data []byte) (Announcement, error) {
	var a Announcement
	err := json.Unmarshal(data, &a)
	return a, err
}

// StringField returns the value of key when it holds a JSON string.
func (a Announcement) StringField(key string) string {
	raw, ok := a.Get(key)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// IsSet reports whether key is present with a non-empty value. null, false,
// zero, "" and empty objects or arrays count as unset.
func (a Announcement) IsSet(key string) bool {
	raw, ok := a.Get(key)
	if !ok {
		return false
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return false
	}

	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case json.Number:
		f, err := strconv.ParseFloat(v.String(), 64)
		return err == nil && f != 0
	case map[string]any:
		return len(v) > 0
	case []any:
		return len(v) > 0
	}
	return true
}

func (a Announcement) Len() int {
	return len(a.OrderedKVMap)
}

// StoredAnnouncement pairs a document with the key the store assigned it.
type StoredAnnouncement struct {
	Key      string
	Document Announcement
}

// StoreQuery is a single equality clause understood by every store driver.
// An empty Field selects everything.
type StoreQuery struct {
	Field string
	Value string
}

func (q StoreQuery) IsZero() bool {
	return q.Field == ""
}

// Matches evaluates the clause against a document in memory.
func (q StoreQuery) Matches(a Announcement) bool {
	if q.IsZero() {
		return true
	}
	return a.StringField(q.Field) == q.Value
}
