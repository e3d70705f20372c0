// Copyright (c) 2023-present ShopLoc, Inc. All Rights Reserved.
// See LICENSE.txt for license information.
//

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/shoploc/shoploc/internal/api"
	"github.com/shoploc/shoploc/internal/catalog"
	"github.com/shoploc/shoploc/internal/supervisor"
	"github.com/shoploc/shoploc/internal/syncer"
)

const (
	databaseFlag      = "database"
	listenFlag        = "listen"
	shopDomainFlag    = "shop-domain"
	accessTokenFlag   = "access-token"
	apiVersionFlag    = "api-version"
	crawlIntervalFlag = "crawl-interval"
	queueIntervalFlag = "queue-interval"
	debugFlag         = "debug"
)

func init() {
	serverCmd.PersistentFlags().String(listenFlag, "localhost:8087", "Local interface and port to listen on")
	serverCmd.PersistentFlags().String(databaseFlag, "postgres://localhost:5435", "Location of a Postgres database for the server to use")
	serverCmd.PersistentFlags().String(shopDomainFlag, "", "Domain of the shop whose catalog to mirror, e.g. example.myshopify.com")
	serverCmd.PersistentFlags().String(accessTokenFlag, "", "Admin API access token for the shop")
	serverCmd.PersistentFlags().String(apiVersionFlag, "2024-01", "Remote catalog API version to pin requests to")
	serverCmd.PersistentFlags().Duration(crawlIntervalFlag, 10*time.Second, "How often to advance in-progress catalog crawls by one page")
	serverCmd.PersistentFlags().Duration(queueIntervalFlag, 5*time.Second, "How often to drain the targeted resync queue")
	serverCmd.PersistentFlags().Bool(debugFlag, true, "Whether to output debug logs")
	serverCmd.MarkPersistentFlagRequired(shopDomainFlag)
	serverCmd.MarkPersistentFlagRequired(accessTokenFlag)
}

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the ShopLoc server.",
	RunE: func(command *cobra.Command, args []string) error {

		debug, _ := command.Flags().GetBool(debugFlag)
		if debug {
			logger.SetLevel(logrus.DebugLevel)
		}

		listen, _ := command.Flags().GetString(listenFlag)
		if listen == "" {
			return errors.New("the server command requires the --listen flag not be empty")
		}

		shopDomain, _ := command.Flags().GetString(shopDomainFlag)
		accessToken, _ := command.Flags().GetString(accessTokenFlag)
		apiVersion, _ := command.Flags().GetString(apiVersionFlag)
		crawlInterval, _ := command.Flags().GetDuration(crawlIntervalFlag)
		queueInterval, _ := command.Flags().GetDuration(queueIntervalFlag)

		sqlStore, err := sqlStore(command)
		if err != nil {
			return err
		}

		logger.WithFields(logrus.Fields{
			"shop":        shopDomain,
			"api-version": apiVersion,
			"listen":      listen,
			"debug":       debug,
		}).Info("Starting ShopLoc Server")

		remote := catalog.NewClient(catalog.Config{
			ShopDomain:  shopDomain,
			AccessToken: accessToken,
			APIVersion:  apiVersion,
		}, logger)

		s := syncer.NewSyncer(sqlStore, remote, logger)

		crawlSupervisor := supervisor.NewCrawlSupervisor(sqlStore, s, logger, crawlInterval)
		crawlSupervisor.Start()

		queueSupervisor := supervisor.NewQueueSupervisor(sqlStore, s, logger, queueInterval)
		queueSupervisor.Start()

		router := mux.NewRouter()
		api.Register(router,
			&api.Context{
				Store:   sqlStore,
				Catalog: remote,
				Logger:  logger,
			})

		srv := &http.Server{
			Addr:           listen,
			Handler:        router,
			ReadTimeout:    180 * time.Second,
			WriteTimeout:   180 * time.Second,
			IdleTimeout:    time.Second * 180,
			MaxHeaderBytes: 1 << 20,
		}

		go func() {
			logger.WithField("addr", srv.Addr).Info("Listening")
			err := srv.ListenAndServe()
			if err != nil && err != http.ErrServerClosed {
				logger.WithError(err).Error("Failed to listen and serve")
			}
		}()

		c := make(chan os.Signal, 1)
		// We'll accept graceful shutdowns when quit via:
		//  - SIGINT (Ctrl+C)
		//  - SIGTERM (Kubernetes pod rolling termination)
		// SIGKILL and SIGQUIT will not be caught.
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		sig := <-c
		logger.WithField("shutdown-signal", sig.String()).Info("Shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}
