package services

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"
	"time"

	"zapgroups-backend-go/internal/models"
	"zapgroups-backend-go/internal/rowstore"
)

// Store bundles the row-store client with the table ids the directory uses.
// It is the only path to domain data; nothing here is an authoritative copy.
type Store struct {
	Client       *rowstore.Client
	GroupsTable  string
	ReportsTable string
	UsersTable   string
}

func decodeGroups(raw json.RawMessage) ([]models.Group, error) {
	groups := []models.Group{}
	if len(raw) == 0 {
		return groups, nil
	}
	if err := json.Unmarshal(raw, &groups); err != nil {
		return nil, WrapError(err, "decode group rows")
	}
	return groups, nil
}

// ListApprovedGroups fetches the public collection, pre-filtered by the store
// on status. Text search, category and boost partitioning happen later in the
// ranking engine.
func ListApprovedGroups(ctx context.Context, store Store) ([]models.Group, error) {
	list, err := store.Client.ListRows(ctx, store.GroupsTable, rowstore.EqualFilter("status", models.StatusApproved))
	if err != nil {
		return nil, err
	}
	return decodeGroups(list.Results)
}

// ListGroupsByOwner fetches every listing of one owner, pending included.
func ListGroupsByOwner(ctx context.Context, store Store, ownerID int64) ([]models.Group, error) {
	params := rowstore.EqualFilter("owner_id", strconv.FormatInt(ownerID, 10))
	list, err := store.Client.ListRows(ctx, store.GroupsTable, params)
	if err != nil {
		return nil, err
	}
	return decodeGroups(list.Results)
}

// ListAllGroups fetches the full moderation table.
func ListAllGroups(ctx context.Context, store Store) ([]models.Group, error) {
	list, err := store.Client.ListRows(ctx, store.GroupsTable, nil)
	if err != nil {
		return nil, err
	}
	return decodeGroups(list.Results)
}

func GetGroup(ctx context.Context, store Store, groupID int64) (models.Group, error) {
	var group models.Group
	if err := store.Client.GetRow(ctx, store.GroupsTable, groupID, &group); err != nil {
		if serr, ok := err.(rowstore.StatusError); ok && serr.StatusCode == 404 {
			return models.Group{}, ErrNotFound("Group not found")
		}
		return models.Group{}, err
	}
	return group, nil
}

// CreateGroup validates the form and creates the row with status forced to
// pending and all counters zeroed; the store assigns the id.
func CreateGroup(ctx context.Context, store Store, ownerID int64, form GroupForm) (models.Group, error) {
	if err := ValidateGroupForm(form); err != nil {
		return models.Group{}, err
	}
	fields := map[string]interface{}{
		"owner_id":      ownerID,
		"name":          strings.TrimSpace(form.Name),
		"category":      form.Category,
		"invite_link":   strings.TrimSpace(form.InviteLink),
		"description":   form.Description,
		"rules":         form.Rules,
		"image_url":     form.ImageURL,
		"status":        models.StatusPending,
		"clicks":        0,
		"boosted":       false,
		"boosted_until": nil,
		"reports":       0,
		"created_at":    time.Now().UTC().Format(time.RFC3339),
	}
	var created models.Group
	if err := store.Client.CreateRow(ctx, store.GroupsTable, fields, &created); err != nil {
		return models.Group{}, err
	}
	return created, nil
}

// UpdateGroup validates and rewrites the submitted fields. Status always
// drops back to pending, no matter which fields changed; approval is a fresh
// admin decision after every edit.
func UpdateGroup(ctx context.Context, store Store, groupID int64, form GroupForm) (models.Group, error) {
	if err := ValidateGroupForm(form); err != nil {
		return models.Group{}, err
	}
	fields := map[string]interface{}{
		"name":        strings.TrimSpace(form.Name),
		"category":    form.Category,
		"invite_link": strings.TrimSpace(form.InviteLink),
		"description": form.Description,
		"rules":       form.Rules,
		"image_url":   form.ImageURL,
		"status":      models.StatusPending,
	}
	var updated models.Group
	if err := store.Client.UpdateRow(ctx, store.GroupsTable, groupID, fields, &updated); err != nil {
		return models.Group{}, err
	}
	return updated, nil
}

// DeleteGroup is a hard delete; confirmation is the client's policy.
func DeleteGroup(ctx context.Context, store Store, groupID int64) error {
	return store.Client.DeleteRow(ctx, store.GroupsTable, groupID)
}

// ToggleApproval flips approved and pending with a single-field update.
func ToggleApproval(ctx context.Context, store Store, group models.Group) (models.Group, error) {
	next := models.StatusApproved
	if group.Status == models.StatusApproved {
		next = models.StatusPending
	}
	fields := map[string]interface{}{"status": next}
	var updated models.Group
	if err := store.Client.UpdateRow(ctx, store.GroupsTable, group.ID, fields, &updated); err != nil {
		return models.Group{}, err
	}
	return updated, nil
}

// BoostGroup grants one hour (the configured window) of elevated visibility.
// An actively boosted group cannot be boosted again until the window lapses;
// expiry is the derived predicate, not the stored flag, so a stale flag from
// a lapsed boost does not block a new one.
func BoostGroup(ctx context.Context, store Store, group models.Group, window time.Duration, now time.Time) (models.Group, error) {
	if group.BoostActive(now) {
		return models.Group{}, ErrBadRequest("Group is already boosted")
	}
	until := now.UTC().Add(window)
	fields := map[string]interface{}{
		"boosted":       true,
		"boosted_until": until.Format(time.RFC3339),
	}
	var updated models.Group
	if err := store.Client.UpdateRow(ctx, store.GroupsTable, group.ID, fields, &updated); err != nil {
		return models.Group{}, err
	}
	return updated, nil
}

// IncrementClicks bumps the join counter by one. Read-modify-write with
// last-write-wins; concurrent joins can under-count and that is accepted.
func IncrementClicks(ctx context.Context, store Store, group models.Group) error {
	fields := map[string]interface{}{"clicks": group.Clicks + 1}
	return store.Client.UpdateRow(ctx, store.GroupsTable, group.ID, fields, nil)
}

// GroupSlug renders the public detail-page path segment. The row id leads so
// the slug stays resolvable however the name changes.
func GroupSlug(group models.Group) string {
	return strconv.FormatInt(group.ID, 10) + "-" + Slugify(group.Name)
}

// SlugID extracts the row id from a slug's leading numeric segment.
func SlugID(slug string) (int64, error) {
	head := slug
	if idx := strings.IndexByte(slug, '-'); idx >= 0 {
		head = slug[:idx]
	}
	id, err := strconv.ParseInt(head, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrNotFound("Group not found")
	}
	return id, nil
}

// CreateReport appends a report row and then bumps the group's counter.
// The two writes are independent and not transactional: when the counter
// update fails after the report row exists, the failure is logged and the
// report stands with an under-counting group row (accepted inconsistency).
func CreateReport(ctx context.Context, store Store, group models.Group, reason string) (models.Report, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return models.Report{}, ErrBadRequest("A report reason is required")
	}
	fields := map[string]interface{}{
		"group_id":   group.ID,
		"reason":     reason,
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}
	var report models.Report
	if err := store.Client.CreateRow(ctx, store.ReportsTable, fields, &report); err != nil {
		return models.Report{}, err
	}
	counter := map[string]interface{}{"reports": group.Reports + 1}
	if err := store.Client.UpdateRow(ctx, store.GroupsTable, group.ID, counter, nil); err != nil {
		log.Printf("report counter update failed for group %d: %v", group.ID, err)
	}
	return report, nil
}

// ListReports fetches the admin report feed.
func ListReports(ctx context.Context, store Store) ([]models.Report, error) {
	list, err := store.Client.ListRows(ctx, store.ReportsTable, nil)
	if err != nil {
		return nil, err
	}
	reports := []models.Report{}
	if len(list.Results) == 0 {
		return reports, nil
	}
	if err := json.Unmarshal(list.Results, &reports); err != nil {
		return nil, WrapError(err, "decode report rows")
	}
	return reports, nil
}
