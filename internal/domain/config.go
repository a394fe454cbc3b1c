package domain

// Config holds the URIs the inbox stamps into the documents it serves.
type Config struct {
	ContextURI    string `yaml:"context"`
	IDRoot        string `yaml:"idRoot"`
	ContainerRoot string `yaml:"containerRoot"`
	ContainerType string `yaml:"containerType"`
}
