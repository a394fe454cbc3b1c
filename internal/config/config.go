package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-yaml/yaml"

	"github.com/totegamma/rerum-inbox"
	"github.com/totegamma/rerum-inbox/internal/domain"
)

type Config struct {
	Inbox  domain.Config `yaml:"inbox"`
	Server Server        `yaml:"server"`
}

// Server configures the process. FirebaseTypeField is the child field a
// ?type= query orders by in the firebase store: empty means "@type", set
// "type" for collections written by older deployments.
type Server struct {
	Listen            string        `yaml:"listen"`
	Store             string        `yaml:"store"` // firebase, postgres, memory
	FirebaseURL       string        `yaml:"firebaseURL"`
	FirebaseTypeField string        `yaml:"firebaseTypeField"`
	PostgresDsn       string        `yaml:"postgresDsn"`
	RedisAddr         string        `yaml:"redisAddr"`
	RedisPassword     string        `yaml:"redisPassword"`
	RedisDB           int           `yaml:"redisDB"`
	MemcachedAddr     string        `yaml:"memcachedAddr"`
	CacheTTL          time.Duration `yaml:"cacheTTL"`
	EnableTrace       bool          `yaml:"enableTrace"`
	TraceEndpoint     string        `yaml:"traceEndpoint"`
	EnableMetrics     bool          `yaml:"enableMetrics"`
}

// maxCacheTTL matches memcached, which reads longer expirations as unix times.
const maxCacheTTL = 30 * 24 * time.Hour

const (
	StoreFirebase = "firebase"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

func Default() Config {
	return Config{
		Inbox: domain.Config{
			ContextURI:    inbox.DefaultContext,
			IDRoot:        inbox.DefaultIDRoot,
			ContainerRoot: inbox.DefaultContainerRoot,
			ContainerType: inbox.DefaultContainerType,
		},
		Server: Server{
			Listen:   ":3000",
			Store:    StoreMemory,
			CacheTTL: 10 * time.Minute,
		},
	}
}

// Load reads the YAML file at path on top of the defaults. A missing file is
// not an error. PORT and ID_ROOT from the environment win over the file.
func Load(path string) (Config, error) {
	config := Default()

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		err = yaml.NewDecoder(file).Decode(&config)
		if err != nil {
			return Config{}, err
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, err
	}

	if port := os.Getenv("PORT"); port != "" {
		config.Server.Listen = ":" + port
	}
	if root := os.Getenv("ID_ROOT"); root != "" {
		config.Inbox.IDRoot = root + "/id"
		config.Inbox.ContainerRoot = root + "/messages"
	}

	return config, config.Validate()
}

func (c Config) Validate() error {
	switch c.Server.Store {
	case StoreMemory:
	case StoreFirebase:
		if c.Server.FirebaseURL == "" {
			return errors.New("firebaseURL is required for the firebase store")
		}
	case StorePostgres:
		if c.Server.PostgresDsn == "" {
			return errors.New("postgresDsn is required for the postgres store")
		}
	default:
		return errors.New("unknown store: " + c.Server.Store)
	}
	if c.Server.CacheTTL < 0 || c.Server.CacheTTL > maxCacheTTL {
		return fmt.Errorf("cacheTTL must be between 0 and %s", maxCacheTTL)
	}
	if c.Inbox.IDRoot == "" || c.Inbox.ContainerRoot == "" {
		return errors.New("inbox.idRoot and inbox.containerRoot are required")
	}
	return nil
}
