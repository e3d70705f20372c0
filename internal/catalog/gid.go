package catalog

import (
	"fmt"
	"strings"

	"github.com/shoploc/shoploc/model"
)

var gidTypeByResourceType = map[string]string{
	model.ResourceTypeProduct:            "Product",
	model.ResourceTypeProductOption:      "ProductOption",
	model.ResourceTypeProductOptionValue: "ProductOptionValue",
	model.ResourceTypeCollection:         "Collection",
	model.ResourceTypeArticle:            "OnlineStoreArticle",
	model.ResourceTypePage:               "OnlineStorePage",
	model.ResourceTypeTheme:              "OnlineStoreTheme",
	model.ResourceTypeMetaobject:         "Metaobject",
}

// GID builds the catalog-global identifier for a bare resource ID of
// the given type.
func GID(resourceType, id string) string {
	gidType, ok := gidTypeByResourceType[resourceType]
	if !ok {
		gidType = resourceType
	}
	return fmt.Sprintf("gid://shopify/%s/%s", gidType, id)
}

// MarketGID builds the catalog-global identifier of a market from its
// bare ID. The empty ID stands for the default context and stays
// empty.
func MarketGID(id string) string {
	if id == "" {
		return ""
	}
	return fmt.Sprintf("gid://shopify/Market/%s", id)
}

// LegacyID strips a gid down to its trailing bare ID. IDs that are not
// gids pass through unchanged.
func LegacyID(gid string) string {
	if idx := strings.LastIndex(gid, "/"); idx >= 0 {
		return gid[idx+1:]
	}
	return gid
}

// ResourceTypeOfGID maps a gid back to the resource type tag used on
// mirrored rows, defaulting to the raw gid type when unknown.
func ResourceTypeOfGID(gid string) string {
	trimmed := strings.TrimPrefix(gid, "gid://shopify/")
	idx := strings.Index(trimmed, "/")
	if idx < 0 {
		return trimmed
	}
	gidType := trimmed[:idx]
	for resourceType, t := range gidTypeByResourceType {
		if t == gidType {
			return resourceType
		}
	}
	return gidType
}
