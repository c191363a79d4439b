package services

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Categories is the fixed set a listing must belong to.
var Categories = []string{
	"Friendship",
	"Cars",
	"Crypto",
	"Development",
	"Jobs",
	"Sports",
	"Quotes",
	"Games",
	"Humor",
	"Investing",
	"Fashion",
	"Music",
	"Dating",
	"News",
	"Religion",
	"Health",
	"Sales",
	"Other",
}

// inviteLinkMarker is the invite domain of the target messaging platform.
const inviteLinkMarker = "chat.whatsapp.com"

// GroupForm is the owner-submitted portion of a listing.
type GroupForm struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	InviteLink  string `json:"inviteLink"`
	Description string `json:"description"`
	Rules       string `json:"rules"`
	ImageURL    string `json:"imageUrl"`
}

// ValidateGroupForm checks submissions in fixed order; the first failing rule
// wins and nothing reaches the network. A nil return means the form is
// acceptable. Description and rules use rune counts, so a 50-character text
// passes regardless of encoding.
func ValidateGroupForm(form GroupForm) error {
	if len([]rune(strings.TrimSpace(form.Name))) < 3 {
		return ErrBadRequest("Group name must be at least 3 characters long")
	}
	if !validCategory(form.Category) {
		return ErrBadRequest("Select a valid category")
	}
	if !strings.Contains(form.InviteLink, inviteLinkMarker) {
		return ErrBadRequest("The link must be a valid WhatsApp group invite")
	}
	if len([]rune(form.Description)) < 50 {
		return ErrBadRequest("Description must be at least 50 characters long")
	}
	if len([]rune(form.Rules)) < 50 {
		return ErrBadRequest("Rules must be at least 50 characters long")
	}
	if strings.TrimSpace(form.ImageURL) == "" {
		return ErrBadRequest("A group image is required")
	}
	return nil
}

func validCategory(category string) bool {
	for _, known := range Categories {
		if category == known {
			return true
		}
	}
	return false
}

func Slugify(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	var b strings.Builder
	lastDash := false
	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
			continue
		}
		if !lastDash {
			b.WriteRune('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return uuid.NewString()
	}
	return slug
}
