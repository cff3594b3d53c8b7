package housecleaning

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/apperr"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/auth"
	catalog "github.com/ovaphlow/pitchfork/service-reservation-go/internal/catalog/entity"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/housecleaning/entity"
	"github.com/ovaphlow/pitchfork/service-reservation-go/internal/notify"
)

type fakeRepo struct {
	rows    []entity.Reservation
	views   map[int64][]entity.View
	err     error
	listErr error
}

// statusRepo filters stored rows by owner and status like the SQL WHERE clause.
type statusRepo struct {
	fakeRepo
}

func (s *statusRepo) ListByUser(ctx context.Context, userID, statusID int64) ([]entity.View, error) {
	out := []entity.View{}
	for _, r := range s.rows {
		if r.UserID == userID && r.StatusID == statusID {
			out = append(out, entity.View{ID: r.ID, ReserveLocation: r.ReserveLocation})
		}
	}
	return out, nil
}

func (f *fakeRepo) Create(ctx context.Context, res *entity.Reservation) error {
	if f.err != nil {
		return f.err
	}
	res.ID = int64(len(f.rows) + 1)
	f.rows = append(f.rows, *res)
	return nil
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID, statusID int64) ([]entity.View, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := f.views[userID]
	if out == nil {
		out = []entity.View{}
	}
	return out, nil
}

// fakeRefs resolves ids 1..n per table.
type fakeRefs struct {
	max   map[string]int64
	err   error
	calls []string
}

func (f *fakeRefs) Exists(ctx context.Context, v catalog.Variant, id int64) (bool, error) {
	f.calls = append(f.calls, v.Field)
	if f.err != nil {
		return false, f.err
	}
	return id >= 1 && id <= f.max[v.Table], nil
}

type fakeNotifier struct {
	sent []notify.Message
}

func (f *fakeNotifier) Notify(ctx context.Context, msg notify.Message) {
	f.sent = append(f.sent, msg)
}

func seeded() *fakeRefs {
	return &fakeRefs{max: map[string]int64{
		"reserve_cycles":         4,
		"service_durations":      3,
		"service_starting_times": 2,
		"statuses":               2,
	}}
}

var caller = auth.Identity{UserID: 7, Name: "pang", MobileNumber: "01033334444"}

func ptr[T any](v T) *T { return &v }

func validRequest() CreateRequest {
	return CreateRequest{
		ServiceStartingTimeID: ptr(int64(1)),
		ServiceDurationID:     ptr(int64(2)),
		ReserveCycleID:        ptr(int64(1)),
		StatusID:              ptr(int64(1)),
		ServiceStartDate:      ptr("2020-07-28"),
		ReserveLocation:       ptr("Seoul"),
		HavePet:               ptr(1),
	}
}

// One booking texts the owner exactly once; an earlier version of this
// flow sent the same SMS twice per booking.
func TestService_Create_SendsSingleNotification(t *testing.T) {
	repo, n := &fakeRepo{}, &fakeNotifier{}
	svc := NewService(repo, seeded(), n)

	require.NoError(t, svc.Create(context.Background(), caller, validRequest()))

	require.Len(t, repo.rows, 1)
	row := repo.rows[0]
	assert.Equal(t, int64(7), row.UserID)
	assert.True(t, row.HavePet)
	assert.Equal(t, "2020-07-28", row.ServiceStartDate.Format(entity.DateLayout))
	assert.Equal(t, []notify.Message{{MobileNumber: "01033334444", Address: "Seoul"}}, n.sent)
}

func TestService_Create_HavePet(t *testing.T) {
	cases := []struct {
		name string
		in   *int
		want bool
	}{
		{"absent", nil, false},
		{"zero", ptr(0), false},
		{"one", ptr(1), true},
		{"two", ptr(2), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeRepo{}
			req := validRequest()
			req.HavePet = tc.in
			require.NoError(t, NewService(repo, seeded(), &fakeNotifier{}).Create(context.Background(), caller, req))
			assert.Equal(t, tc.want, repo.rows[0].HavePet)
		})
	}
}

func TestService_Create_Rejected(t *testing.T) {
	cases := []struct {
		name string
		edit func(*CreateRequest)
		code string
	}{
		{"missing location", func(r *CreateRequest) { r.ReserveLocation = nil }, apperr.CodeInvalidKeys},
		{"missing status", func(r *CreateRequest) { r.StatusID = nil }, apperr.CodeInvalidKeys},
		{"missing date", func(r *CreateRequest) { r.ServiceStartDate = nil }, apperr.CodeInvalidKeys},
		{"unknown cycle", func(r *CreateRequest) { r.ReserveCycleID = ptr(int64(99)) }, "reserve_cycle_id INVALID_VALUES"},
		{"unknown duration", func(r *CreateRequest) { r.ServiceDurationID = ptr(int64(99)) }, "service_duration_id INVALID_VALUES"},
		{"unknown starting time", func(r *CreateRequest) { r.ServiceStartingTimeID = ptr(int64(0)) }, "starting_time_id INVALID_VALUES"},
		{"unknown status", func(r *CreateRequest) { r.StatusID = ptr(int64(3)) }, "status_id INVALID_VALUES"},
		{"bad date", func(r *CreateRequest) { r.ServiceStartDate = ptr("28/07/2020") }, "service_start_date INVALID_VALUES"},
		{"location too long", func(r *CreateRequest) { r.ReserveLocation = ptr(strings.Repeat("a", entity.MaxLocationLength+1)) }, apperr.CodeInvalidValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo, n := &fakeRepo{}, &fakeNotifier{}
			req := validRequest()
			tc.edit(&req)

			err := NewService(repo, seeded(), n).Create(context.Background(), caller, req)
			status, code := apperr.Status(err)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tc.code, code)
			assert.Empty(t, repo.rows)
			assert.Empty(t, n.sent)
		})
	}
}

func TestService_Create_LocationAtLimit(t *testing.T) {
	repo := &fakeRepo{}
	req := validRequest()
	// the column limit counts characters, not bytes
	req.ReserveLocation = ptr(strings.Repeat("서", entity.MaxLocationLength))

	require.NoError(t, NewService(repo, seeded(), &fakeNotifier{}).Create(context.Background(), caller, req))
	assert.Len(t, repo.rows, 1)
}

func TestService_ListMine_ActiveStatusOnly(t *testing.T) {
	repo := &statusRepo{}
	svc := NewService(repo, seeded(), &fakeNotifier{})
	ctx := context.Background()

	for _, st := range []int64{1, 2, 1} {
		req := validRequest()
		req.StatusID = ptr(st)
		req.ReserveLocation = ptr(fmt.Sprintf("status-%d", st))
		require.NoError(t, svc.Create(ctx, caller, req))
	}
	other := validRequest()
	require.NoError(t, svc.Create(ctx, auth.Identity{UserID: 8, MobileNumber: "01000000000"}, other))

	views, err := svc.ListMine(ctx, caller)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, int64(1), views[0].ID)
	assert.Equal(t, int64(3), views[1].ID)
	for _, v := range views {
		assert.Equal(t, "status-1", v.ReserveLocation)
	}
}

func TestService_Create_ReferenceOrder(t *testing.T) {
	refs := seeded()
	req := validRequest()
	req.ReserveCycleID = ptr(int64(99))
	req.StatusID = ptr(int64(99))

	err := NewService(&fakeRepo{}, refs, &fakeNotifier{}).Create(context.Background(), caller, req)
	_, code := apperr.Status(err)
	assert.Equal(t, "reserve_cycle_id INVALID_VALUES", code)
	assert.Equal(t, []string{"reserve_cycle_id"}, refs.calls)
}

func TestService_Create_StoreFailure(t *testing.T) {
	n := &fakeNotifier{}
	svc := NewService(&fakeRepo{err: errors.New("db down")}, seeded(), n)

	err := svc.Create(context.Background(), caller, validRequest())
	status, _ := apperr.Status(err)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Empty(t, n.sent)
}

func TestService_Create_LookupFailure(t *testing.T) {
	refs := seeded()
	refs.err = errors.New("db down")
	err := NewService(&fakeRepo{}, refs, &fakeNotifier{}).Create(context.Background(), caller, validRequest())
	status, _ := apperr.Status(err)
	assert.Equal(t, http.StatusInternalServerError, status)
}

func newTestHandler(repo *fakeRepo, n *fakeNotifier) *Handler {
	return NewHandler(NewService(repo, seeded(), n), zap.NewNop().Sugar())
}

func TestHandler_Create(t *testing.T) {
	repo, n := &fakeRepo{}, &fakeNotifier{}
	h := newTestHandler(repo, n)

	body := `{"service_starting_time_id":1,"service_duration_id":2,"reserve_cycle_id":1,"status_id":1,"service_start_date":"2020-07-28","reserve_location":"Seoul","have_pet":1}`
	w := httptest.NewRecorder()
	h.Create(w, httptest.NewRequest(http.MethodPost, "/housecleaning/reservations", strings.NewReader(body)), caller)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"success"}`, w.Body.String())
	assert.Len(t, repo.rows, 1)
	assert.Len(t, n.sent, 1)
}

func TestHandler_Create_BadPayload(t *testing.T) {
	cases := map[string]string{
		"not json":      `{`,
		"wrong type":    `{"service_starting_time_id":"one"}`,
		"empty":         ``,
		"array body":    `[]`,
		"pet as bool":   `{"have_pet":true}`,
		"trailing data": `{"service_starting_time_id":1,"service_duration_id":2,"reserve_cycle_id":1,"status_id":1,"service_start_date":"2020-07-28","reserve_location":"Seoul"} {"status_id":9} garbage`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &fakeRepo{}
			w := httptest.NewRecorder()
			newTestHandler(repo, &fakeNotifier{}).Create(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)), caller)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"message":"INVALID_VALUE"}`, w.Body.String())
			assert.Empty(t, repo.rows)
		})
	}
}

func TestHandler_Create_MissingKey(t *testing.T) {
	w := httptest.NewRecorder()
	newTestHandler(&fakeRepo{}, &fakeNotifier{}).Create(w,
		httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"reserve_location":"Seoul"}`)), caller)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"INVALID_KEYS"}`, w.Body.String())
}

func TestHandler_ListMine(t *testing.T) {
	repo := &fakeRepo{views: map[int64][]entity.View{
		7: {{ID: 3, Name: "pang", ReserveCycle: "1회", ServiceDuration: "4시간", StartingTime: "오전9시",
			ServiceStartDate: "2020-07-28", ReserveLocation: "Seoul", HavePet: true, Status: "예약완료"}},
		8: {{ID: 4, Name: "other"}},
	}}
	w := httptest.NewRecorder()
	newTestHandler(repo, &fakeNotifier{}).ListMine(w, httptest.NewRequest(http.MethodGet, "/", nil), caller)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"hr_orders":[{"id":3,"name":"pang","reserve_cycle":"1회","service_duration":"4시간","starting_time":"오전9시","service_start_date":"2020-07-28","reserve_location":"Seoul","have_pet":true,"status":"예약완료"}]}`, w.Body.String())
}

func TestHandler_ListMine_Empty(t *testing.T) {
	w := httptest.NewRecorder()
	newTestHandler(&fakeRepo{}, &fakeNotifier{}).ListMine(w, httptest.NewRequest(http.MethodGet, "/", nil), caller)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"hr_orders":[]}`, w.Body.String())
}

func TestHandler_ListMine_StoreFailure(t *testing.T) {
	w := httptest.NewRecorder()
	newTestHandler(&fakeRepo{listErr: errors.New("db down")}, &fakeNotifier{}).ListMine(w, httptest.NewRequest(http.MethodGet, "/", nil), caller)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"INTERNAL_ERROR"}`, w.Body.String())
}
