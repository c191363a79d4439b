package services_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"zapgroups-backend-go/internal/models"
	"zapgroups-backend-go/internal/rowstore"
	"zapgroups-backend-go/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type storeCall struct {
	Method string
	Path   string
	Query  string
	Fields map[string]interface{}
}

// fakeStore records every row-store request and answers with a canned handler
// per (method, path), defaulting to an echo of the submitted fields.
type fakeStore struct {
	t        *testing.T
	server   *httptest.Server
	calls    []storeCall
	handlers map[string]http.HandlerFunc
}

func newFakeStore(t *testing.T) *fakeStore {
	t.Helper()
	fake := &fakeStore{t: t, handlers: map[string]http.HandlerFunc{}}
	fake.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := storeCall{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			_ = json.Unmarshal(raw, &call.Fields)
		}
		fake.calls = append(fake.calls, call)

		if handler, ok := fake.handlers[r.Method+" "+r.URL.Path]; ok {
			handler(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		payload := map[string]interface{}{"id": 1}
		for key, value := range call.Fields {
			payload[key] = value
		}
		_ = json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(fake.server.Close)
	return fake
}

func (f *fakeStore) respond(method, path string, status int, body string) {
	f.handlers[method+" "+path] = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (f *fakeStore) store() services.Store {
	return services.Store{
		Client:       rowstore.NewClient(f.server.URL, "test-token"),
		GroupsTable:  "groups",
		ReportsTable: "reports",
		UsersTable:   "users",
	}
}

func TestCreateGroupForcesPendingAndZeroCounters(t *testing.T) {
	fake := newFakeStore(t)

	created, err := services.CreateGroup(context.Background(), fake.store(), 42, validForm())
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	require.Len(t, fake.calls, 1)
	call := fake.calls[0]
	assert.Equal(t, http.MethodPost, call.Method)
	assert.Equal(t, "/api/database/rows/table/groups/", call.Path)
	assert.Equal(t, models.StatusPending, call.Fields["status"])
	assert.EqualValues(t, 0, call.Fields["clicks"])
	assert.EqualValues(t, 0, call.Fields["reports"])
	assert.Equal(t, false, call.Fields["boosted"])
	assert.Nil(t, call.Fields["boosted_until"])
	assert.EqualValues(t, 42, call.Fields["owner_id"])
}

func TestCreateGroupInvalidFormSkipsStore(t *testing.T) {
	fake := newFakeStore(t)
	form := validForm()
	form.Name = "ab"

	_, err := services.CreateGroup(context.Background(), fake.store(), 42, form)
	require.Error(t, err)
	assert.Empty(t, fake.calls, "validation failures must not reach the store")
}

func TestUpdateGroupAlwaysResetsStatus(t *testing.T) {
	fake := newFakeStore(t)

	_, err := services.UpdateGroup(context.Background(), fake.store(), 7, validForm())
	require.NoError(t, err)

	require.Len(t, fake.calls, 1)
	call := fake.calls[0]
	assert.Equal(t, http.MethodPatch, call.Method)
	assert.Equal(t, "/api/database/rows/table/groups/7/", call.Path)
	assert.Equal(t, models.StatusPending, call.Fields["status"])
	_, hasClicks := call.Fields["clicks"]
	assert.False(t, hasClicks, "edits never touch counters")
}

func TestToggleApprovalFlipsBothWays(t *testing.T) {
	fake := newFakeStore(t)
	store := fake.store()

	_, err := services.ToggleApproval(context.Background(), store, models.Group{ID: 7, Status: models.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, fake.calls[0].Fields["status"])

	_, err = services.ToggleApproval(context.Background(), store, models.Group{ID: 7, Status: models.StatusApproved})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, fake.calls[1].Fields["status"])
}

func TestBoostGroupSetsWindow(t *testing.T) {
	fake := newFakeStore(t)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	_, err := services.BoostGroup(context.Background(), fake.store(), models.Group{ID: 7}, time.Hour, now)
	require.NoError(t, err)

	require.Len(t, fake.calls, 1)
	call := fake.calls[0]
	assert.Equal(t, true, call.Fields["boosted"])
	assert.Equal(t, "2025-06-10T13:00:00Z", call.Fields["boosted_until"])
}

func TestBoostGroupRefusesActiveBoost(t *testing.T) {
	fake := newFakeStore(t)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	until := now.Add(30 * time.Minute)
	group := models.Group{ID: 7, Boosted: true, BoostedUntil: &until}

	_, err := services.BoostGroup(context.Background(), fake.store(), group, time.Hour, now)
	require.Error(t, err)
	assert.Empty(t, fake.calls, "an active boost must not reach the store")
}

func TestBoostGroupIgnoresStaleFlag(t *testing.T) {
	fake := newFakeStore(t)
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	until := now.Add(-time.Minute)
	group := models.Group{ID: 7, Boosted: true, BoostedUntil: &until}

	_, err := services.BoostGroup(context.Background(), fake.store(), group, time.Hour, now)
	require.NoError(t, err)
	require.Len(t, fake.calls, 1)
}

func TestIncrementClicksSendsNextCount(t *testing.T) {
	fake := newFakeStore(t)

	err := services.IncrementClicks(context.Background(), fake.store(), models.Group{ID: 7, Clicks: 41})
	require.NoError(t, err)

	require.Len(t, fake.calls, 1)
	assert.EqualValues(t, 42, fake.calls[0].Fields["clicks"])
}

func TestCreateReportPersistsDespiteCounterFailure(t *testing.T) {
	fake := newFakeStore(t)
	fake.respond(http.MethodPatch, "/api/database/rows/table/groups/7/", http.StatusInternalServerError, `{"error":"boom"}`)

	report, err := services.CreateReport(context.Background(), fake.store(), models.Group{ID: 7, Reports: 2}, "spam")
	require.NoError(t, err, "a counter failure after the report row exists is swallowed")
	assert.Equal(t, int64(1), report.ID)

	require.Len(t, fake.calls, 2)
	assert.Equal(t, http.MethodPost, fake.calls[0].Method)
	assert.Equal(t, "/api/database/rows/table/reports/", fake.calls[0].Path)
	assert.Equal(t, "spam", fake.calls[0].Fields["reason"])
	assert.Equal(t, http.MethodPatch, fake.calls[1].Method)
	assert.EqualValues(t, 3, fake.calls[1].Fields["reports"])
}

func TestCreateReportRequiresReason(t *testing.T) {
	fake := newFakeStore(t)

	_, err := services.CreateReport(context.Background(), fake.store(), models.Group{ID: 7}, "   ")
	require.Error(t, err)
	assert.Empty(t, fake.calls)
}

func TestGetGroupMapsMissingRow(t *testing.T) {
	fake := newFakeStore(t)
	fake.respond(http.MethodGet, "/api/database/rows/table/groups/99/", http.StatusNotFound, `{"error":"ERROR_ROW_DOES_NOT_EXIST"}`)

	_, err := services.GetGroup(context.Background(), fake.store(), 99)
	require.Error(t, err)
	serr, ok := err.(services.ServiceError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, serr.Status)
}

func TestListApprovedGroupsFiltersOnStatus(t *testing.T) {
	fake := newFakeStore(t)
	fake.respond(http.MethodGet, "/api/database/rows/table/groups/", http.StatusOK,
		`{"count":1,"next":null,"previous":null,"results":[{"id":3,"name":"Go Devs","status":"approved"}]}`)

	groups, err := services.ListApprovedGroups(context.Background(), fake.store())
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Go Devs", groups[0].Name)

	assert.Contains(t, fake.calls[0].Query, "filter__status__equal=approved")
}

func TestFindUserByEmailLowercasesLookup(t *testing.T) {
	fake := newFakeStore(t)
	fake.respond(http.MethodGet, "/api/database/rows/table/users/", http.StatusOK,
		`{"count":1,"next":null,"previous":null,"results":[{"id":5,"email":"ana@example.com"}]}`)

	user, found, err := services.FindUserByEmail(context.Background(), fake.store(), "  Ana@Example.COM ")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(5), user.ID)

	assert.Contains(t, fake.calls[0].Query, "filter__email__equal=ana%40example.com")
}

func TestFindUserByEmailMissIsNotAnError(t *testing.T) {
	fake := newFakeStore(t)
	fake.respond(http.MethodGet, "/api/database/rows/table/users/", http.StatusOK,
		`{"count":0,"next":null,"previous":null,"results":[]}`)

	_, found, err := services.FindUserByEmail(context.Background(), fake.store(), "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGroupSlugRoundTrip(t *testing.T) {
	group := models.Group{ID: 123, Name: "Weekend Hikers"}
	slug := services.GroupSlug(group)
	assert.Equal(t, "123-weekend-hikers", slug)

	id, err := services.SlugID(slug)
	require.NoError(t, err)
	assert.Equal(t, group.ID, id)
}
