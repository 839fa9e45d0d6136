// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cms

// Page sizes and limits used by the named operations.
const (
	HeroLimit            = 5
	InitialArticlesLimit = 16
	CategoryListLimit    = 50
	FeedPageSize         = 16
	RelatedLimit         = 4
	SitemapArticleLimit  = 5000
	SitemapCategoryLimit = 200
	SitemapPageLimit     = 100
)

const cardFields = `
fragment CardFields on Article {
  documentId
  title
  slug
  excerpt
  publication_date
  source {
    documentId
    name
    icon { documentId url alternativeText }
  }
  featured_image { documentId url alternativeText width height }
  author { name }
  is_advertisement
  external_url
}
`

const articleFields = `
  documentId
  title
  slug
  publication_date
  body
  seo_title
  seo_description
  featured_image { documentId url alternativeText width height }
  source { documentId name icon { documentId url alternativeText } website }
  categories(pagination: { limit: 10 }) { documentId name slug }
  author { name }
`

const categoryList = `
  allCategories: categories(pagination: { limit: $categoryLimit }, sort: "name:asc") {
    documentId
    name
    slug
  }
`

const homepageQuery = cardFields + `
query Homepage($heroLimit: Int!, $initialPageSize: Int!, $categoryLimit: Int!) {
  homepage {
    hero_articles(pagination: { limit: $heroLimit }, sort: "publication_date:desc") {
      ...CardFields
    }
  }
  initialArticles: articles(
    sort: "publication_date:desc"
    pagination: { page: 1, pageSize: $initialPageSize }
  ) {
    ...CardFields
  }
` + categoryList + `
}
`

const categoryPageQuery = cardFields + `
query CategoryPage($slug: String!, $page: Int!, $pageSize: Int!, $categoryLimit: Int!) {
  categories(filters: { slug: { eq: $slug } }) {
    documentId
    name
    slug
    description
  }
  articles(
    filters: { categories: { slug: { eq: $slug } } }
    sort: "publication_date:desc"
    pagination: { page: $page, pageSize: $pageSize }
  ) {
    ...CardFields
  }
` + categoryList + `
}
`

const primaryCategoryQuery = `
query PrimaryCategory($slug: String!) {
  articles(filters: { slug: { eq: $slug } }, pagination: { limit: 1 }) {
    categories(pagination: { limit: 1 }) { slug }
  }
}
`

const articleWithRelatedQuery = cardFields + `
query ArticleWithRelated($slug: String!, $primaryCategorySlug: String!, $relatedLimit: Int!, $categoryLimit: Int!) {
  articles(filters: { slug: { eq: $slug } }, pagination: { limit: 1 }) {
` + articleFields + `
  }
` + categoryList + `
  relatedArticles: articles(
    filters: {
      and: [
        { categories: { slug: { eq: $primaryCategorySlug } } }
        { slug: { ne: $slug } }
      ]
    }
    sort: "publication_date:desc"
    pagination: { limit: $relatedLimit }
  ) {
    ...CardFields
  }
}
`

const articleOnlyQuery = `
query ArticleOnly($slug: String!, $categoryLimit: Int!) {
  articles(filters: { slug: { eq: $slug } }, pagination: { limit: 1 }) {
` + articleFields + `
  }
` + categoryList + `
}
`

const staticPageQuery = `
query StaticPage($slug: String!) {
  staticPages(filters: { slug: { eq: $slug } }) {
    documentId
    title
    slug
    body
    seo_title
    seo_description
  }
}
`

const allSlugsQuery = `
query AllSlugs($articleLimit: Int!, $categoryLimit: Int!, $pageLimit: Int!) {
  articles(pagination: { limit: $articleLimit }) { slug updatedAt }
  categories(pagination: { limit: $categoryLimit }) { slug updatedAt }
  staticPages(pagination: { limit: $pageLimit }) { slug updatedAt }
}
`

const articlesByCategoryQuery = cardFields + `
query ArticlesByCategory($slug: String, $pageSize: Int!) {
  articles(
    filters: { categories: { slug: { eq: $slug } } }
    sort: "publication_date:desc"
    pagination: { page: 1, pageSize: $pageSize }
  ) {
    ...CardFields
  }
}
`

const latestArticlesQuery = cardFields + `
query LatestArticles($pageSize: Int!) {
  articles(
    sort: "publication_date:desc"
    pagination: { page: 1, pageSize: $pageSize }
  ) {
    ...CardFields
  }
}
`
