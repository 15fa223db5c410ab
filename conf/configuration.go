package conf

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DBConfiguration holds all the database related configuration.
type DBConfiguration struct {
	Driver      string `json:"driver" required:"true"`
	URL         string `json:"url" envconfig:"DATABASE_URL" required:"true"`
	Namespace   string `json:"namespace"`
	Automigrate bool   `json:"automigrate"`
}

// JWTConfiguration holds all the JWT related configuration.
type JWTConfiguration struct {
	Secret         string `json:"secret" required:"true"`
	AdminGroupName string `json:"admin_group_name" split_words:"true" default:"admin"`
}

// GlobalConfiguration holds all the configuration that applies to the
// whole service.
type GlobalConfiguration struct {
	API struct {
		Host string `json:"host"`
		Port int    `json:"port" envconfig:"PORT" default:"8080"`
	} `json:"api"`
	DB      DBConfiguration      `json:"db"`
	Logging LoggingConfiguration `json:"logging" envconfig:"LOG"`
}

// StorageConfiguration describes the private object store documents are
// served from. The service credentials resolved here are never handed to
// callers; every read goes through the document gate.
type StorageConfiguration struct {
	Provider      string   `json:"provider"`
	Bucket        string   `json:"bucket"`
	Region        string   `json:"region"`
	Endpoint      string   `json:"endpoint"`
	ExternalHosts []string `json:"external_hosts" split_words:"true"`
}

// ViewerConfiguration holds the knobs for the secure viewer components.
type ViewerConfiguration struct {
	CooldownSeconds int     `json:"cooldown_seconds" split_words:"true" default:"3"`
	MinScale        float64 `json:"min_scale" split_words:"true" default:"0.5"`
	MaxScale        float64 `json:"max_scale" split_words:"true" default:"3"`
}

// Configuration holds all the per-site configuration.
type Configuration struct {
	SiteURL string               `json:"site_url" envconfig:"SITE_URL" required:"true"`
	JWT     JWTConfiguration     `json:"jwt"`
	Storage StorageConfiguration `json:"storage"`
	Viewer  ViewerConfiguration  `json:"viewer"`
}

func loadEnvironment(filename string) error {
	var err error
	if filename != "" {
		err = godotenv.Load(filename)
	} else {
		err = godotenv.Load()
		// .env is optional when running from the environment directly
		if os.IsNotExist(err) {
			return nil
		}
	}
	return err
}

// LoadGlobal loads the global configuration from file and the environment.
func LoadGlobal(filename string) (*GlobalConfiguration, error) {
	if err := loadEnvironment(filename); err != nil {
		return nil, err
	}

	config := new(GlobalConfiguration)
	if err := envconfig.Process("edvault", config); err != nil {
		return nil, err
	}
	if err := ConfigureLogging(&config.Logging); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadConfig loads the per-site configuration from file and the environment.
func LoadConfig(filename string) (*Configuration, error) {
	if err := loadEnvironment(filename); err != nil {
		return nil, err
	}

	config := new(Configuration)
	if err := envconfig.Process("edvault", config); err != nil {
		return nil, err
	}
	config.ApplyDefaults()
	return config, nil
}

// ApplyDefaults fills in configuration that has sane fallbacks.
func (config *Configuration) ApplyDefaults() {
	if config.JWT.AdminGroupName == "" {
		config.JWT.AdminGroupName = "admin"
	}
	if config.Viewer.CooldownSeconds == 0 {
		config.Viewer.CooldownSeconds = 3
	}
	if config.Viewer.MinScale == 0 {
		config.Viewer.MinScale = 0.5
	}
	if config.Viewer.MaxScale == 0 {
		config.Viewer.MaxScale = 3
	}
}
