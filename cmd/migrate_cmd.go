package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/edvault/edvault/conf"
	"github.com/edvault/edvault/models"
)

var migrateCmd = cobra.Command{
	Use:  "migrate",
	Long: "Migrate database structures. This will create new tables and add missing columns and indexes.",
	Run: func(cmd *cobra.Command, args []string) {
		execWithConfig(cmd, migrate)
	},
}

func migrate(globalConfig *conf.GlobalConfiguration, config *conf.Configuration) {
	globalConfig.DB.Automigrate = false
	db, err := models.Connect(globalConfig)
	if err != nil {
		logrus.Fatalf("Error opening database: %+v", err)
	}
	defer db.Close()

	if err := models.AutoMigrate(db); err != nil {
		logrus.Fatalf("Error migrating models: %+v", err)
	}
	logrus.Info("Migration finished")
}
