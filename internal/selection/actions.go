// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package selection

import "pulsereport/internal/models"

// Action is a named, serializable store mutation.
type Action interface {
	ActionName() string
}

// SetAllCategories replaces the category list.
type SetAllCategories struct {
	Categories []models.Category `json:"categories"`
}

// SetInitialArticles hydrates a fresh store.
type SetInitialArticles struct {
	Articles []models.Article `json:"articles"`
}

// SelectCategory switches the active tab. A nil slug is Home.
type SelectCategory struct {
	Slug *string `json:"slug"`
}

// FetchArticles refetches the article list for a slug.
type FetchArticles struct {
	Slug *string `json:"slug"`
}

func (SetAllCategories) ActionName() string   { return "setAllCategories" }
func (SetInitialArticles) ActionName() string { return "setInitialArticles" }
func (SelectCategory) ActionName() string     { return "setSelectedCategorySlug" }
func (FetchArticles) ActionName() string      { return "fetchArticlesForCategory" }
