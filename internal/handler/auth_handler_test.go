package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/hrdesk/review-api/internal/models"
	appErrors "github.com/hrdesk/review-api/pkg/errors"
)

type fakeAuthSrv struct {
	resp    *models.LoginResponse
	err     error
	lastReq models.LoginRequest
}

func (f *fakeAuthSrv) Login(req models.LoginRequest) (*models.LoginResponse, error) {
	f.lastReq = req
	return f.resp, f.err
}

func TestAuthHandlerLogin(t *testing.T) {
	service := &fakeAuthSrv{resp: &models.LoginResponse{AccessToken: "token", ExpiresIn: 3600}}
	handler := NewAuthHandler(service)

	c, rec := testContext(http.MethodPost, "/auth/login", `{"username":"operator","password":"secret"}`)
	handler.Login(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "operator", service.lastReq.Username)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, "token", envelope.Data["accessToken"])
}

func TestAuthHandlerLoginInvalidPayload(t *testing.T) {
	handler := NewAuthHandler(&fakeAuthSrv{})

	c, rec := testContext(http.MethodPost, "/auth/login", "{oops")
	handler.Login(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandlerLoginBadCredentials(t *testing.T) {
	handler := NewAuthHandler(&fakeAuthSrv{err: appErrors.ErrInvalidCredentials})

	c, rec := testContext(http.MethodPost, "/auth/login", `{"username":"operator","password":"wrong"}`)
	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlerMe(t *testing.T) {
	handler := NewAuthHandler(&fakeAuthSrv{})

	c, rec := testContext(http.MethodGet, "/auth/me", "")
	handler.Me(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, "operator", envelope.Data["username"])
}

func TestAuthHandlerMeUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(&fakeAuthSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)

	handler.Me(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
