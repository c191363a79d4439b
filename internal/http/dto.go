package httpapi

import (
	"time"

	"zapgroups-backend-go/internal/models"
	"zapgroups-backend-go/internal/services"
)

type UserDTO struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Type      string `json:"type"`
	CreatedAt string `json:"createdAt"`
}

func buildUserDTO(user models.User) *UserDTO {
	return &UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Type:      user.Type,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// GroupDTO is the listing as the views consume it. BoostActive is the derived
// predicate evaluated at render time, never the raw stored flag.
type GroupDTO struct {
	ID           int64   `json:"id"`
	OwnerID      int64   `json:"ownerId"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Category     string  `json:"category"`
	InviteLink   string  `json:"inviteLink"`
	Description  string  `json:"description"`
	Rules        string  `json:"rules"`
	ImageURL     string  `json:"imageUrl"`
	Status       string  `json:"status"`
	Clicks       int64   `json:"clicks"`
	BoostActive  bool    `json:"boostActive"`
	BoostedUntil *string `json:"boostedUntil"`
	Reports      int64   `json:"reports"`
	CreatedAt    string  `json:"createdAt"`
}

func buildGroupDTO(group models.Group, now time.Time) GroupDTO {
	var until *string
	if group.BoostedUntil != nil {
		formatted := group.BoostedUntil.UTC().Format(time.RFC3339)
		until = &formatted
	}
	return GroupDTO{
		ID:           group.ID,
		OwnerID:      group.OwnerID,
		Name:         group.Name,
		Slug:         services.GroupSlug(group),
		Category:     group.Category,
		InviteLink:   group.InviteLink,
		Description:  group.Description,
		Rules:        group.Rules,
		ImageURL:     group.ImageURL,
		Status:       group.Status,
		Clicks:       group.Clicks,
		BoostActive:  group.BoostActive(now),
		BoostedUntil: until,
		Reports:      group.Reports,
		CreatedAt:    group.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func buildGroupDTOs(groups []models.Group, now time.Time) []GroupDTO {
	items := make([]GroupDTO, 0, len(groups))
	for _, group := range groups {
		items = append(items, buildGroupDTO(group, now))
	}
	return items
}

type ReportDTO struct {
	ID        int64  `json:"id"`
	GroupID   int64  `json:"groupId"`
	Reason    string `json:"reason"`
	CreatedAt string `json:"createdAt"`
}

func buildReportDTOs(reports []models.Report) []ReportDTO {
	items := make([]ReportDTO, 0, len(reports))
	for _, report := range reports {
		items = append(items, ReportDTO{
			ID:        report.ID,
			GroupID:   report.GroupID,
			Reason:    report.Reason,
			CreatedAt: report.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return items
}
