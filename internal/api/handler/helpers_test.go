package handler_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"

	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/hexa-dashboard-api/internal/domain"
	"github.com/vfg2006/hexa-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/hexa-dashboard-api/pkg/middleware"
)

const testUserID = "user-1"

func newRequest(method, target string, body string, params ...httprouter.Param) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	ctx := middleware.WithClaims(req.Context(), claimsFor(testUserID, domain.RoleUser))
	if len(params) > 0 {
		ctx = context.WithValue(ctx, httprouter.ParamsKey, httprouter.Params(params))
	}
	return req.WithContext(ctx)
}

func claimsFor(userID, role string) *domain.Claims {
	claims := &domain.Claims{Role: role}
	claims.Subject = userID
	return claims
}

func decodeAPIError(rec *httptest.ResponseRecorder) apiErrors.APIError {
	var apiErr apiErrors.APIError
	_ = jsoniter.Unmarshal(rec.Body.Bytes(), &apiErr)
	return apiErr
}
