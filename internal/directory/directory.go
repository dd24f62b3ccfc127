// Copyright (c) 2026 GroupMela. All rights reserved.

/*
Package directory defines the WhatsApp-group directory entities and the pure
renderers that turn mirrored snapshots into admin view-models.

# Core Responsibility

  - Entities: Defines [Category], [Group], and [Report] as they live in the
    document store, with decode-time defaults for legacy records.
  - Rendering: Pure functions from decoded snapshots to row view-models;
    same input always yields the same output, no I/O anywhere.

Everything here is side-effect free. Mutations belong to the admin services.
*/
package directory

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

// # Group Enums

// Status tracks a group submission through moderation.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Valid reports whether s is one of the known moderation states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Fallbacks applied while decoding records written before the field existed.
const (
	DefaultGroupName    = "Unnamed"
	DefaultCategoryIcon = "📌"
	DefaultReportReason = "Broken link"
	UnknownCategoryName = "N/A"
)

// # Core Entities

// Category is a browsing section of the directory.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Icon        string    `json:"icon"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Group is a submitted WhatsApp group invite.
type Group struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	InviteLink   string    `json:"link"`
	CategoryID   string    `json:"categoryId"`
	CategoryName string    `json:"category"` // Denormalized at write time
	Description  string    `json:"description,omitempty"`
	Status       Status    `json:"status"`
	Featured     bool      `json:"featured"`
	Members      int64     `json:"members"`
	Views        int64     `json:"views"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Report is a visitor complaint against a listed group.
type Report struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"groupId"`
	GroupName string    `json:"groupName"`
	Reason    string    `json:"reason"`
	Details   string    `json:"details,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// # Snapshot Decoding

// errNotObject rejects documents that are valid JSON but not objects. A
// literal null would otherwise decode into a zero entity and render as a
// phantom row.
var errNotObject = errors.New("document is not a JSON object")

// ensureObject verifies the raw document is a JSON object.
func ensureObject(raw json.RawMessage) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return errNotObject
	}
	return nil
}

/*
DecodeGroup decodes one stored document into a [Group].

Records written by earlier site versions may lack a status or a name; those
get the pending default and the "Unnamed" placeholder so that filtering and
display agree on what the record is.

Parameters:
  - id: The document key within the groups collection.
  - raw: The stored JSON document.

Returns:
  - Group: The decoded entity with defaults applied.
  - error: Non-nil when the document is not a valid JSON object.
*/
func DecodeGroup(id string, raw json.RawMessage) (Group, error) {
	if err := ensureObject(raw); err != nil {
		return Group{}, err
	}
	var group Group
	if err := json.Unmarshal(raw, &group); err != nil {
		return Group{}, err
	}
	group.ID = id
	if group.Status == "" {
		group.Status = StatusPending
	}
	if group.Name == "" {
		group.Name = DefaultGroupName
	}
	return group, nil
}

// DecodeCategory decodes one stored document into a [Category], applying the
// default icon when the record carries none.
func DecodeCategory(id string, raw json.RawMessage) (Category, error) {
	if err := ensureObject(raw); err != nil {
		return Category{}, err
	}
	var category Category
	if err := json.Unmarshal(raw, &category); err != nil {
		return Category{}, err
	}
	category.ID = id
	if category.Icon == "" {
		category.Icon = DefaultCategoryIcon
	}
	return category, nil
}

// DecodeReport decodes one stored document into a [Report], defaulting the
// reason for records filed before the reason picker existed.
func DecodeReport(id string, raw json.RawMessage) (Report, error) {
	if err := ensureObject(raw); err != nil {
		return Report{}, err
	}
	var report Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return Report{}, err
	}
	report.ID = id
	if report.Reason == "" {
		report.Reason = DefaultReportReason
	}
	return report, nil
}

// # Field Identifiers

const (
	FieldName         = "name"
	FieldLink         = "link"
	FieldCategoryID   = "categoryId"
	FieldCategoryName = "category"
	FieldDescription  = "description"
	FieldStatus       = "status"
	FieldFeatured     = "featured"
	FieldMembers      = "members"
	FieldViews        = "views"
	FieldIcon         = "icon"
	FieldSlug         = "slug"
)
