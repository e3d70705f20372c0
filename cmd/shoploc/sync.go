package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/shoploc/shoploc/model"
)

const (
	resourceFlag = "resource"
	restartFlag  = "restart"
)

func init() {
	syncCmd.PersistentFlags().String(serverFlag, "http://localhost:8087", "The ShopLoc server to communicate with")
	syncCmd.PersistentFlags().String(shopFlag, "", "Domain of the shop to operate on")
	syncCmd.PersistentFlags().String(typeFlag, "PRODUCT", "Resource type the sync covers, e.g. PRODUCT")

	startSyncCmd.Flags().Bool(restartFlag, false, "Rewind an existing sync to the beginning of the catalog")
	resyncCmd.Flags().String(resourceFlag, "", "Bare ID of the resource to resync")

	syncCmd.AddCommand(startSyncCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(resyncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Control catalog crawls on the ShopLoc server",
}

var startSyncCmd = &cobra.Command{
	Use:   "start",
	Short: "Begin or resume the full catalog crawl for a resource type",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		server, _ := cmd.Flags().GetString(serverFlag)
		shop, _ := cmd.Flags().GetString(shopFlag)
		resourceType, _ := cmd.Flags().GetString(typeFlag)
		restart, _ := cmd.Flags().GetBool(restartFlag)

		client := model.NewClient(server)
		var status *model.SyncStatus
		var err error
		if restart {
			status, err = client.RestartSync(shop, strings.ToUpper(resourceType))
		} else {
			status, err = client.StartSync(shop, strings.ToUpper(resourceType))
		}
		if err != nil {
			return err
		}

		return printJSON(status)
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the crawl checkpoint for a resource type",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		server, _ := cmd.Flags().GetString(serverFlag)
		shop, _ := cmd.Flags().GetString(shopFlag)
		resourceType, _ := cmd.Flags().GetString(typeFlag)

		client := model.NewClient(server)
		status, err := client.GetSyncStatus(shop, strings.ToUpper(resourceType))
		if err != nil {
			return err
		}
		if status == nil {
			return printJSON(map[string]string{"State": model.SyncStateNotStarted})
		}

		return printJSON(status)
	},
}

var resyncCmd = &cobra.Command{
	Use:   "resync",
	Short: "Queue a targeted resync of a single resource family",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		server, _ := cmd.Flags().GetString(serverFlag)
		shop, _ := cmd.Flags().GetString(shopFlag)
		resourceType, _ := cmd.Flags().GetString(typeFlag)
		resourceID, _ := cmd.Flags().GetString(resourceFlag)

		client := model.NewClient(server)
		return client.EnqueueResync(&model.ResyncRequest{
			Shop:         shop,
			ResourceType: strings.ToUpper(resourceType),
			ResourceID:   resourceID,
		})
	},
}
