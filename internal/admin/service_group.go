// Copyright (c) 2026 GroupMela. All rights reserved.

package admin

import (
	"context"
	"time"

	"github.com/groupmela/admin-api/internal/directory"
	"github.com/groupmela/admin-api/internal/notify"
	"github.com/groupmela/admin-api/internal/platform/apperr"
	"github.com/groupmela/admin-api/internal/platform/config"
	"github.com/groupmela/admin-api/internal/platform/validate"
	"github.com/groupmela/admin-api/internal/store"
)

// GroupInput carries the editable fields of a group listing. Status and
// Featured are honored only on update; creation always goes live approved.
type GroupInput struct {
	Name        string `json:"name"`
	InviteLink  string `json:"link"`
	CategoryID  string `json:"categoryId"`
	Description string `json:"description"`
	Members     int64  `json:"members"`
	Status      string `json:"status,omitempty"`
	Featured    *bool  `json:"featured,omitempty"`
}

func (input GroupInput) validate() error {
	v := validate.New().
		Required("name", input.Name).
		MaxLen("name", input.Name, 120).
		Required("link", input.InviteLink).
		InviteLink("link", input.InviteLink).
		Required("categoryId", input.CategoryID).
		MaxLen("description", input.Description, 1000).
		Custom("members", input.Members < 0, "Must not be negative")
	if input.Status != "" {
		v.OneOf("status", input.Status,
			string(directory.StatusPending),
			string(directory.StatusApproved),
			string(directory.StatusRejected))
	}
	return v.Err()
}

/*
CreateGroup lists a new group directly from the console.

Console-created listings skip moderation: the operator adding a group is the
same person who would approve it, so it goes live as approved immediately.

# Parameters
  - context: Context for the store write.
  - input: The listing fields; the category must currently exist.

# Returns
  - The new document id.
  - [apperr.ValidationError] for bad fields or an unknown category.
*/
func (service *Service) CreateGroup(context context.Context, input GroupInput) (string, error) {
	if err := input.validate(); err != nil {
		return "", err
	}

	category, ok := service.mirror.Category(input.CategoryID)
	if !ok {
		return "", apperr.ValidationError("Unknown category",
			apperr.FieldError{Field: "categoryId", Message: "Category does not exist"})
	}

	id, err := service.store.Create(context, store.CollGroups, directory.Group{
		Name:         input.Name,
		InviteLink:   input.InviteLink,
		CategoryID:   category.ID,
		CategoryName: category.Name,
		Description:  input.Description,
		Members:      input.Members,
		Status:       directory.StatusApproved,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return "", storeErr(err, "group")
	}

	service.afterMutation(context, store.CollGroups)
	service.center.Publish("Group added successfully!", notify.SeveritySuccess)
	service.log.Info("group_created", "group_id", id, "name", input.Name)
	return id, nil
}

/*
UpdateGroup edits an existing listing.

The denormalized category name is re-snapshotted from the current category,
so an edit heals a listing whose category was renamed since submission. The
edit form may also move the group between moderation states and toggle its
featured flag; featuring still requires the resulting state to be approved.

# Parameters
  - context: Context for the store write.
  - groupID: The listing to edit.
  - input: The replacement fields.

# Returns
  - [apperr.NotFound] when the listing is unknown.
  - [apperr.ValidationError] for bad fields or an unknown category.
*/
func (service *Service) UpdateGroup(context context.Context, groupID string, input GroupInput) error {
	if err := input.validate(); err != nil {
		return err
	}

	group, ok := service.mirror.Group(groupID)
	if !ok {
		return apperr.NotFound("group")
	}

	category, ok := service.mirror.Category(input.CategoryID)
	if !ok {
		return apperr.ValidationError("Unknown category",
			apperr.FieldError{Field: "categoryId", Message: "Category does not exist"})
	}

	status := group.Status
	if input.Status != "" {
		status = directory.Status(input.Status)
	}

	fields := map[string]any{
		directory.FieldName:         input.Name,
		directory.FieldLink:         input.InviteLink,
		directory.FieldCategoryID:   category.ID,
		directory.FieldCategoryName: category.Name,
		directory.FieldDescription:  input.Description,
		directory.FieldMembers:      input.Members,
		directory.FieldStatus:       string(status),
	}
	if status != directory.StatusApproved {
		fields[directory.FieldFeatured] = false
	} else if input.Featured != nil {
		fields[directory.FieldFeatured] = *input.Featured
	}

	err := service.store.Merge(context, store.CollGroups, groupID, fields)
	if err != nil {
		return storeErr(err, "group")
	}

	service.afterMutation(context, store.CollGroups)
	service.center.Publish("Group updated successfully!", notify.SeveritySuccess)
	service.log.Info("group_updated", "group_id", groupID)
	return nil
}

// ApproveGroup moves a submission out of the moderation queue and onto the
// public site.
func (service *Service) ApproveGroup(context context.Context, groupID string) error {
	if _, ok := service.mirror.Group(groupID); !ok {
		return apperr.NotFound("group")
	}

	err := service.store.Merge(context, store.CollGroups, groupID, map[string]any{
		directory.FieldStatus: string(directory.StatusApproved),
	})
	if err != nil {
		return storeErr(err, "group")
	}

	service.afterMutation(context, store.CollGroups)
	service.center.Publish("Group approved!", notify.SeveritySuccess)
	service.log.Info("group_approved", "group_id", groupID)
	return nil
}

/*
RejectGroup declines a submission.

What happens to the record depends on the configured rejection policy:
retain keeps it with status "rejected" (and clears any featured flag, since
only approved groups may be featured); delete removes it outright.

# Parameters
  - context: Context for the store write.
  - groupID: The submission to decline.

# Returns
  - [apperr.NotFound] when the listing is unknown.
*/
func (service *Service) RejectGroup(context context.Context, groupID string) error {
	if _, ok := service.mirror.Group(groupID); !ok {
		return apperr.NotFound("group")
	}

	var err error
	if service.rejectionPolicy == config.RejectDelete {
		err = service.store.Delete(context, store.CollGroups, groupID)
	} else {
		err = service.store.Merge(context, store.CollGroups, groupID, map[string]any{
			directory.FieldStatus:   string(directory.StatusRejected),
			directory.FieldFeatured: false,
		})
	}
	if err != nil {
		return storeErr(err, "group")
	}

	service.afterMutation(context, store.CollGroups)
	service.center.Publish("Group rejected", notify.SeverityWarning)
	service.log.Info("group_rejected", "group_id", groupID, "policy", service.rejectionPolicy)
	return nil
}

/*
SetFeatured toggles a listing's featured placement.

Featuring is orthogonal to moderation but only meaningful on the public
site, so it is restricted to approved groups. Unfeaturing is allowed from
any state; it only ever removes visibility.

# Parameters
  - context: Context for the store write.
  - groupID: The listing to toggle.
  - featured: The desired flag value.

# Returns
  - [apperr.NotFound] when the listing is unknown.
  - [apperr.ValidationError] when featuring a non-approved group.
*/
func (service *Service) SetFeatured(context context.Context, groupID string, featured bool) error {
	group, ok := service.mirror.Group(groupID)
	if !ok {
		return apperr.NotFound("group")
	}

	if featured && group.Status != directory.StatusApproved {
		return apperr.ValidationError("Only approved groups can be featured")
	}

	err := service.store.Merge(context, store.CollGroups, groupID, map[string]any{
		directory.FieldFeatured: featured,
	})
	if err != nil {
		return storeErr(err, "group")
	}

	service.afterMutation(context, store.CollGroups)
	if featured {
		service.center.Publish("Group featured!", notify.SeveritySuccess)
	} else {
		service.center.Publish("Group unfeatured", notify.SeverityInfo)
	}
	service.log.Info("group_featured_set", "group_id", groupID, "featured", featured)
	return nil
}

// DeleteGroup removes a listing permanently. Reports referencing it keep
// their own denormalized group name, so the queue stays readable.
func (service *Service) DeleteGroup(context context.Context, groupID string) error {
	if _, ok := service.mirror.Group(groupID); !ok {
		return apperr.NotFound("group")
	}

	if err := service.store.Delete(context, store.CollGroups, groupID); err != nil {
		return storeErr(err, "group")
	}

	service.afterMutation(context, store.CollGroups)
	service.center.Publish("Group deleted", notify.SeverityWarning)
	service.log.Info("group_deleted", "group_id", groupID)
	return nil
}

/*
IncrementViews bumps a listing's view counter by one.

The increment happens inside the store, not read-modify-write here, so two
concurrent visitors starting from 5 views always land on 7.

# Parameters
  - context: Context for the store write.
  - groupID: The listing that was viewed.

# Returns
  - The new counter value.
  - [apperr.NotFound] when the listing is unknown.
*/
func (service *Service) IncrementViews(context context.Context, groupID string) (int64, error) {
	views, err := service.store.Increment(context, store.CollGroups, groupID, directory.FieldViews, 1)
	if err != nil {
		return 0, storeErr(err, "group")
	}

	service.afterMutation(context, store.CollGroups)
	return views, nil
}
