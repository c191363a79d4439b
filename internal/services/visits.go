package services

import (
	"time"

	"zapgroups-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// TrackVisit records one page view in the local analytics database. Visits
// never touch the row store.
func TrackVisit(db *sqlx.DB, ip, userAgent, path, referrer string) error {
	visit := models.SiteVisit{
		ID:        uuid.NewString(),
		IPAddress: nullable(ip),
		UserAgent: nullable(userAgent),
		Path:      nullable(path),
		Referrer:  nullable(referrer),
		CreatedAt: time.Now().UTC(),
	}
	_, err := db.NamedExec(`
INSERT INTO site_visits (id, ip_address, user_agent, path, referrer, created_at)
VALUES (:id, :ip_address, :user_agent, :path, :referrer, :created_at)
`, visit)
	return err
}

func CountVisits(db *sqlx.DB) (int, error) {
	var total int
	err := db.Get(&total, `SELECT count(*) FROM site_visits`)
	return total, err
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
