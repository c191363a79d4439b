package services_test

import (
	"strings"
	"testing"

	"zapgroups-backend-go/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() services.GroupForm {
	return services.GroupForm{
		Name:        "Weekend Hikers",
		Category:    "Sports",
		InviteLink:  "https://chat.whatsapp.com/AbCdEf123",
		Description: strings.Repeat("d", 50),
		Rules:       strings.Repeat("r", 50),
		ImageURL:    "https://example.com/cover.png",
	}
}

func TestValidateGroupFormAccepts(t *testing.T) {
	assert.NoError(t, services.ValidateGroupForm(validForm()))
}

func TestValidateGroupFormDescriptionBoundary(t *testing.T) {
	form := validForm()
	form.Description = strings.Repeat("d", 49)
	err := services.ValidateGroupForm(form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Description")

	form.Description = strings.Repeat("d", 50)
	assert.NoError(t, services.ValidateGroupForm(form))
}

func TestValidateGroupFormRulesBoundary(t *testing.T) {
	form := validForm()
	form.Rules = strings.Repeat("r", 49)
	err := services.ValidateGroupForm(form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Rules")
}

func TestValidateGroupFormChecksInOrder(t *testing.T) {
	// Everything is wrong; the name rule must win.
	form := services.GroupForm{Name: "ab", Category: "Nope", InviteLink: "x"}
	err := services.ValidateGroupForm(form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")

	// Fix the name; the category rule is next.
	form.Name = "abc"
	err = services.ValidateGroupForm(form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category")
}

func TestValidateGroupFormInviteLinkMarker(t *testing.T) {
	form := validForm()
	form.InviteLink = "https://example.com/not-an-invite"
	err := services.ValidateGroupForm(form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invite")
}

func TestValidateGroupFormRequiresImage(t *testing.T) {
	form := validForm()
	form.ImageURL = "   "
	err := services.ValidateGroupForm(form)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image")
}

func TestValidateGroupFormRejectsUnknownCategory(t *testing.T) {
	form := validForm()
	form.Category = "sports" // case-sensitive enum
	err := services.ValidateGroupForm(form)
	require.Error(t, err)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "weekend-hikers", services.Slugify("  Weekend Hikers  "))
	assert.Equal(t, "go-devs-2-0", services.Slugify("Go Devs 2.0"))
	assert.NotEmpty(t, services.Slugify("!!!"), "empty slugs fall back to a generated id")
}

func TestSlugID(t *testing.T) {
	id, err := services.SlugID("123-weekend-hikers")
	require.NoError(t, err)
	assert.Equal(t, int64(123), id)

	id, err = services.SlugID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = services.SlugID("not-a-number")
	assert.Error(t, err)

	_, err = services.SlugID("0-zero")
	assert.Error(t, err)
}
