package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shoploc/shoploc/model"
)

const (
	serverFlag  = "server"
	shopFlag    = "shop"
	localeFlag  = "locale"
	marketFlag  = "market"
	keywordFlag = "keyword"
	typeFlag    = "type"
	pageFlag    = "page"
	perPageFlag = "per-page"
)

func init() {
	translationCmd.PersistentFlags().String(serverFlag, "http://localhost:8087", "The ShopLoc server to communicate with")
	translationCmd.PersistentFlags().String(shopFlag, "", "Domain of the shop to operate on")

	searchTranslationCmd.Flags().String(keywordFlag, "", "Substring to search source content and translations for")
	searchTranslationCmd.Flags().StringSlice(typeFlag, nil, "Resource types to restrict the search to, e.g. PRODUCT")
	searchTranslationCmd.Flags().StringSlice(localeFlag, nil, "Locales to restrict the search to")
	searchTranslationCmd.Flags().Int(pageFlag, 0, "Zero-based page of results to fetch")
	searchTranslationCmd.Flags().Int(perPageFlag, 20, "Number of results per page")

	translationCmd.AddCommand(searchTranslationCmd)
}

var translationCmd = &cobra.Command{
	Use:   "translation",
	Short: "Query the mirrored translations on the ShopLoc server",
}

var searchTranslationCmd = &cobra.Command{
	Use:   "search",
	Short: "Search mirrored source content and translations by substring",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		server, _ := cmd.Flags().GetString(serverFlag)
		shop, _ := cmd.Flags().GetString(shopFlag)
		keyword, _ := cmd.Flags().GetString(keywordFlag)
		types, _ := cmd.Flags().GetStringSlice(typeFlag)
		locales, _ := cmd.Flags().GetStringSlice(localeFlag)
		page, _ := cmd.Flags().GetInt(pageFlag)
		perPage, _ := cmd.Flags().GetInt(perPageFlag)

		client := model.NewClient(server)
		result, err := client.SearchTranslations(&model.SearchRequest{
			Shop:          shop,
			Keyword:       keyword,
			ResourceTypes: upperAll(types),
			Locales:       locales,
			Page:          page,
			PerPage:       perPage,
		})
		if err != nil {
			return err
		}

		return printJSON(result)
	},
}

func upperAll(values []string) []string {
	for i := range values {
		values[i] = strings.ToUpper(values[i])
	}
	return values
}

func printJSON(data interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
