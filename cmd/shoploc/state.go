package main

import (
	"github.com/spf13/cobra"

	"github.com/shoploc/shoploc/model"
)

const (
	fieldFlag   = "field"
	productFlag = "product"
)

func init() {
	stateCmd.PersistentFlags().String(serverFlag, "http://localhost:8087", "The ShopLoc server to communicate with")
	stateCmd.PersistentFlags().String(shopFlag, "", "Domain of the shop to operate on")
	stateCmd.PersistentFlags().String(localeFlag, "", "Locale of the translation")
	stateCmd.PersistentFlags().String(marketFlag, "", "Market context of the translation; empty for the default context")

	getStateCmd.Flags().String(resourceFlag, "", "Bare ID of the resource")
	getStateCmd.Flags().String(fieldFlag, "", "Translated field the state refers to")

	familyStateCmd.Flags().String(productFlag, "", "Bare ID of the product whose family to aggregate")

	stateCmd.AddCommand(getStateCmd)
	stateCmd.AddCommand(familyStateCmd)
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect editorial translation states on the ShopLoc server",
}

var getStateCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the editorial state of a single translated field",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		server, _ := cmd.Flags().GetString(serverFlag)
		shop, _ := cmd.Flags().GetString(shopFlag)
		resourceID, _ := cmd.Flags().GetString(resourceFlag)
		field, _ := cmd.Flags().GetString(fieldFlag)
		locale, _ := cmd.Flags().GetString(localeFlag)
		market, _ := cmd.Flags().GetString(marketFlag)

		client := model.NewClient(server)
		state, err := client.GetState(shop, resourceID, field, locale, market)
		if err != nil {
			return err
		}
		if state == nil {
			return printJSON(map[string]string{"Status": model.StateStatusNotTranslated})
		}

		return printJSON(state)
	},
}

var familyStateCmd = &cobra.Command{
	Use:   "family",
	Short: "Show the states of a product and its options and option values, in review order",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		server, _ := cmd.Flags().GetString(serverFlag)
		shop, _ := cmd.Flags().GetString(shopFlag)
		productID, _ := cmd.Flags().GetString(productFlag)
		locale, _ := cmd.Flags().GetString(localeFlag)
		market, _ := cmd.Flags().GetString(marketFlag)

		client := model.NewClient(server)
		states, err := client.GetStateFamily(shop, productID, locale, market)
		if err != nil {
			return err
		}

		return printJSON(states)
	},
}
