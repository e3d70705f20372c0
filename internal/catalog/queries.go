package catalog

// localesQuery fetches every locale configured on the shop.
const localesQuery = `
query getShopLocales {
  shopLocales {
    locale
    name
    primary
    published
  }
}
`

// marketsQuery fetches the shop's markets and the locales each market's
// web presence publishes.
const marketsQuery = `
query getMarkets {
  markets(first: 50) {
    edges {
      node {
        id
        handle
        name
        webPresence {
          defaultLocale
          alternateLocales
        }
      }
    }
  }
}
`

// productStructureQuery fetches the translatable family of a product:
// the product itself, its options, and their option values.
const productStructureQuery = `
query getProductStructure($id: ID!) {
  product(id: $id) {
    id
    options {
      id
      optionValues {
        id
      }
    }
  }
}
`

// translatableResourcesQuery walks the paged enumeration of
// translatable resources of one type.
const translatableResourcesQuery = `
query listTranslatableResources($resourceType: TranslatableResourceType!, $first: Int!, $after: String) {
  translatableResources(resourceType: $resourceType, first: $first, after: $after) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        resourceId
        translatableContent {
          key
          value
          digest
          locale
        }
      }
    }
  }
}
`

// translationsByIDsQuery fetches source content plus registered
// translations for a batch of resources in one locale and market
// context.
const translationsByIDsQuery = `
query getTranslationsByIds($resourceIds: [ID!]!, $first: Int!, $locale: String!, $marketId: ID) {
  translatableResourcesByIds(resourceIds: $resourceIds, first: $first) {
    edges {
      node {
        resourceId
        translatableContent {
          key
          value
          digest
          locale
        }
        translations(locale: $locale, marketId: $marketId) {
          key
          value
          locale
          updatedAt
        }
      }
    }
  }
}
`

const translationsRegisterMutation = `
mutation registerTranslations($resourceId: ID!, $translations: [TranslationInput!]!) {
  translationsRegister(resourceId: $resourceId, translations: $translations) {
    userErrors {
      field
      message
    }
    translations {
      key
      value
      locale
      updatedAt
    }
  }
}
`

const translationsRemoveMutation = `
mutation removeTranslations($resourceId: ID!, $translationKeys: [String!]!, $locales: [String!]!, $marketIds: [ID!]) {
  translationsRemove(resourceId: $resourceId, translationKeys: $translationKeys, locales: $locales, marketIds: $marketIds) {
    userErrors {
      message
    }
  }
}
`
