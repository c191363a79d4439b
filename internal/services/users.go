package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"zapgroups-backend-go/internal/models"
	"zapgroups-backend-go/internal/rowstore"
)

// FindUserByEmail resolves an account row through the store's equality
// filter. Emails are stored lowercased, so the lookup lowercases first.
func FindUserByEmail(ctx context.Context, store Store, email string) (models.User, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	list, err := store.Client.ListRows(ctx, store.UsersTable, rowstore.EqualFilter("email", email))
	if err != nil {
		return models.User{}, false, err
	}
	users := []models.User{}
	if len(list.Results) > 0 {
		if err := json.Unmarshal(list.Results, &users); err != nil {
			return models.User{}, false, WrapError(err, "decode user rows")
		}
	}
	if len(users) == 0 {
		return models.User{}, false, nil
	}
	return users[0], true, nil
}

func GetUser(ctx context.Context, store Store, userID int64) (models.User, error) {
	var user models.User
	if err := store.Client.GetRow(ctx, store.UsersTable, userID, &user); err != nil {
		if serr, ok := err.(rowstore.StatusError); ok && serr.StatusCode == 404 {
			return models.User{}, ErrNotFound("User not found")
		}
		return models.User{}, err
	}
	return user, nil
}

// CreateUser registers a regular account. Admin accounts are provisioned
// directly in the store, never through this path.
func CreateUser(ctx context.Context, store Store, name, email, passwordHash string) (models.User, error) {
	fields := map[string]interface{}{
		"name":          strings.TrimSpace(name),
		"email":         strings.ToLower(strings.TrimSpace(email)),
		"password_hash": passwordHash,
		"type":          models.UserTypeUser,
		"created_at":    time.Now().UTC().Format(time.RFC3339),
	}
	var created models.User
	if err := store.Client.CreateRow(ctx, store.UsersTable, fields, &created); err != nil {
		return models.User{}, err
	}
	return created, nil
}
