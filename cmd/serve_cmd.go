package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/edvault/edvault/api"
	"github.com/edvault/edvault/conf"
	gcontext "github.com/edvault/edvault/context"
	"github.com/edvault/edvault/models"
	"github.com/edvault/edvault/objectstore"
)

var serveCmd = cobra.Command{
	Use:  "serve",
	Long: "Start API server",
	Run: func(cmd *cobra.Command, args []string) {
		execWithConfig(cmd, serve)
	},
}

func serve(globalConfig *conf.GlobalConfiguration, config *conf.Configuration) {
	db, err := models.Connect(globalConfig)
	if err != nil {
		logrus.Fatalf("Error opening database: %+v", err)
	}
	defer db.Close()

	store, err := objectstore.NewStore(config)
	if err != nil {
		logrus.Fatalf("Error initializing object store: %+v", err)
	}

	ctx := gcontext.WithConfig(context.Background(), config)
	ctx = gcontext.WithObjectStore(ctx, store)

	a := api.NewAPIWithVersion(ctx, config, db, Version)

	l := fmt.Sprintf("%v:%v", globalConfig.API.Host, globalConfig.API.Port)
	logrus.Infof("EdVault API started on: %s", l)
	a.ListenAndServe(l)
}
