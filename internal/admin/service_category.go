// Copyright (c) 2026 GroupMela. All rights reserved.

package admin

import (
	"context"
	"time"

	"github.com/groupmela/admin-api/internal/directory"
	"github.com/groupmela/admin-api/internal/notify"
	"github.com/groupmela/admin-api/internal/platform/apperr"
	"github.com/groupmela/admin-api/internal/platform/validate"
	"github.com/groupmela/admin-api/internal/store"
	"github.com/groupmela/admin-api/pkg/slug"
)

// CategoryInput carries the editable fields of a directory category.
type CategoryInput struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

func (input CategoryInput) validate() error {
	return validate.New().
		Required("name", input.Name).
		MaxLen("name", input.Name, 60).
		MaxLen("icon", input.Icon, 8).
		MaxLen("description", input.Description, 500).
		Err()
}

/*
CreateCategory adds a browsing section to the directory.

The URL slug derives from the name; the icon falls back to the standard
pin when the operator leaves it blank.

# Parameters
  - context: Context for the store write.
  - input: The category fields.

# Returns
  - The new document id.
  - [apperr.ValidationError] for bad fields or a duplicate name.
*/
func (service *Service) CreateCategory(context context.Context, input CategoryInput) (string, error) {
	if err := input.validate(); err != nil {
		return "", err
	}

	categorySlug := slug.From(input.Name)
	for _, existing := range service.mirror.Categories() {
		if existing.Slug == categorySlug {
			return "", apperr.ValidationError("Duplicate category",
				apperr.FieldError{Field: "name", Message: "A category with this name already exists"})
		}
	}

	icon := input.Icon
	if icon == "" {
		icon = directory.DefaultCategoryIcon
	}

	id, err := service.store.Create(context, store.CollCategories, directory.Category{
		Name:        input.Name,
		Icon:        icon,
		Slug:        categorySlug,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return "", storeErr(err, "category")
	}

	service.afterMutation(context, store.CollCategories)
	service.center.Publish("Category added successfully!", notify.SeveritySuccess)
	service.log.Info("category_created", "category_id", id, "slug", categorySlug)
	return id, nil
}

/*
UpdateCategory edits a browsing section.

Renaming re-derives the slug. Groups keep their denormalized copy of the old
name; listings render the live name first, so they pick up the rename without
being rewritten.

# Parameters
  - context: Context for the store write.
  - categoryID: The category to edit.
  - input: The replacement fields.

# Returns
  - [apperr.NotFound] when the category is unknown.
*/
func (service *Service) UpdateCategory(context context.Context, categoryID string, input CategoryInput) error {
	if err := input.validate(); err != nil {
		return err
	}

	if _, ok := service.mirror.Category(categoryID); !ok {
		return apperr.NotFound("category")
	}

	icon := input.Icon
	if icon == "" {
		icon = directory.DefaultCategoryIcon
	}

	err := service.store.Merge(context, store.CollCategories, categoryID, map[string]any{
		directory.FieldName:        input.Name,
		directory.FieldIcon:        icon,
		directory.FieldSlug:        slug.From(input.Name),
		directory.FieldDescription: input.Description,
	})
	if err != nil {
		return storeErr(err, "category")
	}

	service.afterMutation(context, store.CollCategories)
	service.center.Publish("Category updated successfully!", notify.SeveritySuccess)
	service.log.Info("category_updated", "category_id", categoryID)
	return nil
}

// DeleteCategory removes a browsing section. Groups filed under it are left
// in place; their rows fall back to the denormalized snapshot name.
func (service *Service) DeleteCategory(context context.Context, categoryID string) error {
	if _, ok := service.mirror.Category(categoryID); !ok {
		return apperr.NotFound("category")
	}

	if err := service.store.Delete(context, store.CollCategories, categoryID); err != nil {
		return storeErr(err, "category")
	}

	service.afterMutation(context, store.CollCategories)
	service.center.Publish("Category deleted", notify.SeverityWarning)
	service.log.Info("category_deleted", "category_id", categoryID)
	return nil
}
