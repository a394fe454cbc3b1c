package inbox

import (
	"strings"
)

// ComposeID builds the canonical identifier of a stored announcement.
func ComposeID(root, key string) string {
	return strings.TrimSuffix(root, "/") + "/" + key
}

// ComposeContainerID builds the container identifier. The target is echoed
// as given, an empty target still yields a trailing "?target=".
func ComposeContainerID(root, target string) string {
	return root + "?target=" + target
}
