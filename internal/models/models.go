package models

import "time"

// Group statuses as stored in the row store. A group is publicly listed only
// while approved; every owner edit drops it back to pending for re-review.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// User types stored on the user row.
const (
	UserTypeUser  = "user"
	UserTypeAdmin = "admin"
)

// Group is a directory listing. Rows are owned by the remote row store and
// decoded here on every read; ids are store-assigned.
type Group struct {
	ID           int64      `json:"id"`
	OwnerID      int64      `json:"owner_id"`
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	InviteLink   string     `json:"invite_link"`
	Description  string     `json:"description"`
	Rules        string     `json:"rules"`
	ImageURL     string     `json:"image_url"`
	Status       string     `json:"status"`
	Clicks       int64      `json:"clicks"`
	Boosted      bool       `json:"boosted"`
	BoostedUntil *time.Time `json:"boosted_until"`
	Reports      int64      `json:"reports"`
	CreatedAt    time.Time  `json:"created_at"`
}

// BoostActive reports whether the group is currently boosted. The stored
// boosted flag and boosted_until may be stale after expiry, so the predicate
// is re-evaluated against wall-clock time on every read and never persisted.
func (g Group) BoostActive(now time.Time) bool {
	return g.Boosted && g.BoostedUntil != nil && g.BoostedUntil.After(now)
}

// User is an account row in the remote row store.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Type         string    `json:"type"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u User) IsAdmin() bool {
	return u.Type == UserTypeAdmin
}

// Report is an append-only abuse report against a group.
type Report struct {
	ID        int64     `json:"id"`
	GroupID   int64     `json:"group_id"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// SiteVisit and MetricSampleRow live in the local analytics database, not in
// the row store.
type SiteVisit struct {
	ID        string    `db:"id"`
	IPAddress *string   `db:"ip_address"`
	UserAgent *string   `db:"user_agent"`
	Path      *string   `db:"path"`
	Referrer  *string   `db:"referrer"`
	CreatedAt time.Time `db:"created_at"`
}

type MetricSampleRow struct {
	ID                string    `db:"id"`
	CapturedAt        time.Time `db:"captured_at"`
	ProcessRSSBytes   int64     `db:"process_rss_bytes"`
	SystemMemoryTotal int64     `db:"system_memory_total_bytes"`
	SystemMemoryUsed  int64     `db:"system_memory_used_bytes"`
	DiskTotalBytes    int64     `db:"disk_total_bytes"`
	DiskUsedBytes     int64     `db:"disk_used_bytes"`
	ProcessCPULoad    float64   `db:"process_cpu_load"`
	SystemCPULoad     float64   `db:"system_cpu_load"`
}
