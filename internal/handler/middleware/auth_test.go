//go:build unit

package middleware_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"storefront-api/internal/domain/user"
	"storefront-api/internal/handler/middleware"
	"storefront-api/internal/pkg/cookie"
	"storefront-api/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type stubValidator struct {
	tokens map[string]user.Role
	ids    map[string]uuid.UUID
}

func (v *stubValidator) ValidateToken(token string) (uuid.UUID, user.Role, error) {
	role, ok := v.tokens[token]
	if !ok {
		return uuid.Nil, "", errors.New("token is expired")
	}
	return v.ids[token], role, nil
}

type AuthMiddlewareTestSuite struct {
	suite.Suite
	router *gin.Engine
	ids    map[string]uuid.UUID
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.ids = map[string]uuid.UUID{
		"customer-token":  uuid.New(),
		"moderator-token": uuid.New(),
		"admin-token":     uuid.New(),
	}
	validator := &stubValidator{
		tokens: map[string]user.Role{
			"customer-token":  user.RoleCustomer,
			"moderator-token": user.RoleModerator,
			"admin-token":     user.RoleAdmin,
		},
		ids: s.ids,
	}
	m := middleware.NewAuthMiddleware(validator, slog.New(slog.NewTextHandler(io.Discard, nil)))

	whoami := func(c *gin.Context) {
		id, _ := middleware.GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "admin": middleware.IsAdmin(c)})
	}
	s.router.GET("/me", m.RequireAuth(), whoami)
	s.router.GET("/admin", m.RequireAuth(), m.RequireRoleAtLeast(user.RoleAdmin), whoami)
	s.router.GET("/optional", m.OptionalAuth(), whoami)
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (s *AuthMiddlewareTestSuite) TestRequireAuth() {
	s.Run("成功: Bearerトークンで認証する", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "customer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(s.ids["customer-token"].String(), body["id"])
		s.Equal(false, body["admin"])
	})

	s.Run("成功: Cookieのトークンを優先する", func() {
		cookies := []*http.Cookie{{Name: cookie.AccessTokenCookieName, Value: "admin-token"}}
		rec := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodGet, "/me", nil, cookies, "customer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(s.ids["admin-token"].String(), body["id"])
	})

	s.Run("失敗: トークンなし", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusUnauthorized, "UNAUTHORIZED")
	})

	s.Run("失敗: 無効なトークン", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/me", nil, "forged")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired token")
	})
}

func (s *AuthMiddlewareTestSuite) TestRequireRoleAtLeast() {
	testCases := []struct {
		name       string
		token      string
		expectCode int
	}{
		{name: "customerは拒否", token: "customer-token", expectCode: http.StatusForbidden},
		{name: "moderatorは拒否", token: "moderator-token", expectCode: http.StatusForbidden},
		{name: "adminは通過", token: "admin-token", expectCode: http.StatusOK},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin", nil, tc.token)
			if tc.expectCode == http.StatusOK {
				var body map[string]any
				httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
				s.Equal(true, body["admin"])
				return
			}
			httptest.AssertErrorCode(s.T(), rec, tc.expectCode, "FORBIDDEN")
		})
	}
}

func (s *AuthMiddlewareTestSuite) TestOptionalAuth() {
	s.Run("トークンなしでも通過する", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/optional", nil, "")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(uuid.Nil.String(), body["id"])
	})

	s.Run("無効なトークンは無視する", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/optional", nil, "forged")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}
