package conf

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// LoggingConfiguration defines how the service logs.
type LoggingConfiguration struct {
	Level            string `json:"level"`
	File             string `json:"file"`
	DisableColors    bool   `json:"disable_colors" split_words:"true"`
	QuoteEmptyFields bool   `json:"quote_empty_fields" split_words:"true"`
}

// ConfigureLogging sets up the global logrus instance from configuration.
func ConfigureLogging(config *LoggingConfiguration) error {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors:    config.DisableColors,
		QuoteEmptyFields: config.QuoteEmptyFields,
		FullTimestamp:    true,
	})

	if config.File != "" {
		f, err := os.OpenFile(config.File, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0644)
		if err != nil {
			return errors.Wrap(err, "opening log file")
		}
		logrus.SetOutput(f)
		logrus.Infof("Set output file to %s", config.File)
	}

	if config.Level != "" {
		level, err := logrus.ParseLevel(config.Level)
		if err != nil {
			return errors.Wrap(err, "parsing log level")
		}
		logrus.SetLevel(level)
		logrus.Debug("Set log level to: " + logrus.GetLevel().String())
	}

	return nil
}
