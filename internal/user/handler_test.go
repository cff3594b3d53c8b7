package user

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeIssuer struct{ err error }

func (f fakeIssuer) Issue(userID int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-for-user", nil
}

func post(t *testing.T, h http.HandlerFunc, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	h(w, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw)))
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w, out
}

func TestHandler_SignupAndSignin(t *testing.T) {
	h := NewHandler(newTestService(newFakeRepo()), fakeIssuer{}, zap.NewNop().Sugar())

	w, body := post(t, h.Signup, map[string]string{
		"name": "pang", "email": "pang@example.com", "mobile_number": "01033334444", "password": "pw",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, float64(1), body["id"])

	w, body = post(t, h.Signin, map[string]string{"email": "pang@example.com", "password": "pw"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "token-for-user", body["access_token"])

	w, body = post(t, h.Signin, map[string]string{"email": "pang@example.com", "password": "bad"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_USER", body["message"])
}

func TestHandler_SignupErrors(t *testing.T) {
	h := NewHandler(newTestService(newFakeRepo()), fakeIssuer{}, zap.NewNop().Sugar())

	w, body := post(t, h.Signup, map[string]string{"email": "a@b.c"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_KEYS", body["message"])

	w, body = post(t, h.Signup, map[string]string{"name": "a", "email": "a@b.c", "mobile_number": "010", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_PHONE_NUMBER", body["message"])

	w, body = post(t, h.Signup, map[string]string{
		"name": strings.Repeat("n", MaxNameLength+1), "email": "a@b.c", "mobile_number": "01012345678", "password": "pw",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_VALUE", body["message"])
}

func TestHandler_SignupTrailingData(t *testing.T) {
	repo := newFakeRepo()
	h := NewHandler(newTestService(repo), fakeIssuer{}, zap.NewNop().Sugar())

	body := `{"name":"a","email":"a@b.c","mobile_number":"01012345678","password":"pw"} {"name":"b"}`
	w := httptest.NewRecorder()
	h.Signup(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"INVALID_VALUE"}`, w.Body.String())
	assert.Empty(t, repo.users)
}

func TestHandler_SigninIssuerFailure(t *testing.T) {
	svc := newTestService(newFakeRepo())
	h := NewHandler(svc, fakeIssuer{err: errors.New("sign failed")}, zap.NewNop().Sugar())
	post(t, h.Signup, map[string]string{"name": "a", "email": "a@b.c", "mobile_number": "01012345678", "password": "pw"})

	w, body := post(t, h.Signin, map[string]string{"email": "a@b.c", "password": "pw"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", body["message"])
}
