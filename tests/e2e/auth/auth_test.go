//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"storefront-api/internal/domain/user"
	"storefront-api/internal/handler/dto/request"
	resdto "storefront-api/internal/handler/dto/response"
	"storefront-api/internal/pkg/cookie"
	"storefront-api/tests/common/authtest"
	"storefront-api/tests/common/dbtest"
	"storefront-api/tests/common/httptest"
	"storefront-api/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL   = "/api/v1/auth/login"
	logoutURL  = "/api/v1/auth/logout"
	refreshURL = "/api/v1/auth/refresh"
	meURL      = "/api/v1/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	// テスト用ユーザーを作成
	dbtest.CreateTestUser(s.T(), s.DB, "admin@example.com", user.RoleAdmin.String())
	dbtest.CreateTestUser(s.T(), s.DB, "shopper@example.com", user.RoleCustomer.String())
	dbtest.CreateTestUser(s.T(), s.DB, "moderator@example.com", user.RoleModerator.String())
	dbtest.CreateTestUser(s.T(), s.DB, "inactive@example.com", user.RoleCustomer.String())

	// 非アクティブユーザーを作成
	_, err := s.DB.Exec(s.T().Context(), "UPDATE users SET is_active = false WHERE email = 'inactive@example.com'")
	require.NoError(s.T(), err)
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
		description    string
	}{
		{
			name:           "正常なログイン",
			email:          "shopper@example.com",
			password:       dbtest.TestPassword,
			expectedStatus: http.StatusOK,
			description:    "有効な認証情報でログインできること",
		},
		{
			name:           "存在しないユーザー",
			email:          "nonexistent@example.com",
			password:       dbtest.TestPassword,
			expectedStatus: http.StatusUnauthorized,
			description:    "存在しないユーザーでログインできないこと",
		},
		{
			name:           "間違ったパスワード",
			email:          "shopper@example.com",
			password:       "wrongpassword",
			expectedStatus: http.StatusUnauthorized,
			description:    "間違ったパスワードでログインできないこと",
		},
		{
			name:           "非アクティブユーザー",
			email:          "inactive@example.com",
			password:       dbtest.TestPassword,
			expectedStatus: http.StatusForbidden,
			description:    "非アクティブユーザーはログインできないこと",
		},
		{
			name:           "空のメールアドレス",
			email:          "",
			password:       dbtest.TestPassword,
			expectedStatus: http.StatusBadRequest,
			description:    "空のメールアドレスは拒否されること",
		},
		{
			name:           "空のパスワード",
			email:          "shopper@example.com",
			password:       "",
			expectedStatus: http.StatusBadRequest,
			description:    "空のパスワードは拒否されること",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			reqBody := request.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			}

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, reqBody, "")
			require.Equal(t, tt.expectedStatus, w.Code, tt.description)

			if tt.expectedStatus == http.StatusOK {
				// 成功時のレスポンス形式チェック
				var loginRes resdto.LoginResponse
				err := httptest.DecodeResponseBody(t, w.Body, &loginRes)
				require.NoError(t, err)
				require.NotEmpty(t, loginRes.AccessToken, "アクセストークンが空")
				require.NotEmpty(t, loginRes.RefreshToken, "リフレッシュトークンが空")
				require.Equal(t, "customer", loginRes.Role)

				// last_login_atが更新されることを確認
				var updated bool
				err = s.DB.QueryRow(t.Context(), "SELECT last_login_at IS NOT NULL FROM users WHERE email = $1", tt.email).Scan(&updated)
				require.NoError(t, err)
				require.True(t, updated, "last_login_atが更新されていない")
			}
		})
	}
}

func (s *authSuite) TestRefresh() {
	login := func() *http.Cookie {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "shopper@example.com", Password: dbtest.TestPassword}, "")
		require.Equal(s.T(), http.StatusOK, w.Code)
		return httptest.ExtractCookie(w, cookie.RefreshTokenCookieName)
	}

	s.Run("正常なリフレッシュ", func() {
		t := s.T()
		refresh := login()
		require.NotNil(t, refresh)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, refreshURL, request.RefreshRequest{RefreshToken: refresh.Value}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res resdto.TokenResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		require.NotEmpty(t, res.AccessToken, "新しいアクセストークンが空")
		require.NotEmpty(t, res.RefreshToken, "新しいリフレッシュトークンが空")
	})

	s.Run("Cookieのリフレッシュトークン", func() {
		t := s.T()
		refresh := login()

		w := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, refreshURL, nil, []*http.Cookie{refresh}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("アクセストークンではリフレッシュできない", func() {
		t := s.T()
		access := authtest.LoginUser(t, s.Router, "shopper@example.com", dbtest.TestPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, refreshURL, request.RefreshRequest{RefreshToken: access}, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("無効なリフレッシュトークン", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, refreshURL, request.RefreshRequest{RefreshToken: "invalid-refresh-token"}, "")
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})

	s.Run("空のリフレッシュトークン", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, refreshURL, request.RefreshRequest{}, "")
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})
}

func (s *authSuite) TestLogout() {
	tests := []struct {
		name           string
		setupToken     func() string
		expectedStatus int
		description    string
	}{
		{
			name: "正常なログアウト",
			setupToken: func() string {
				return authtest.LoginUser(s.T(), s.Router, "shopper@example.com", dbtest.TestPassword)
			},
			expectedStatus: http.StatusNoContent,
			description:    "有効なトークンでログアウトできること",
		},
		{
			name: "無効なトークン",
			setupToken: func() string {
				return "invalid-token"
			},
			expectedStatus: http.StatusUnauthorized,
			description:    "無効なトークンでログアウトできないこと",
		},
		{
			name: "トークンなし",
			setupToken: func() string {
				return ""
			},
			expectedStatus: http.StatusUnauthorized,
			description:    "トークンなしでログアウトできないこと",
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			token := tt.setupToken()
			w := httptest.PerformRequest(t, s.Router, http.MethodPost, logoutURL, nil, token)
			require.Equal(t, tt.expectedStatus, w.Code, tt.description)
		})
	}
}

func (s *authSuite) TestMe() {
	tests := []struct {
		name           string
		email          string
		role           user.Role
		expectedStatus int
	}{
		{name: "管理者ユーザーの情報取得", email: "admin2@example.com", role: user.RoleAdmin, expectedStatus: http.StatusOK},
		{name: "顧客ユーザーの情報取得", email: "shopper2@example.com", role: user.RoleCustomer, expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			token := authtest.CreateAndLogin(t, s.DB, s.Router, tt.email, tt.role.String())
			w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
			require.Equal(t, tt.expectedStatus, w.Code)

			var res resdto.UserResponse
			require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
			require.Equal(t, tt.email, res.Email)
			require.Equal(t, tt.role.String(), res.Role)
			require.NotContains(t, w.Body.String(), "password", "レスポンスにパスワード情報が含まれている")
		})
	}

	s.Run("無効なトークン", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, meURL, nil, "invalid-token")
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})
}

func (s *authSuite) TestTokenExpiry() {
	s.Run("期限切れトークンの拒否", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "expiry@example.com", user.RoleAdmin.String())
		expiredToken := s.JWT.CreateExpiredToken(t, userID, user.RoleAdmin)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, expiredToken)
		require.Equal(t, http.StatusUnauthorized, w.Code, "期限切れトークンは拒否されるべき")
	})
}

func (s *authSuite) TestConcurrentLogin() {
	s.Run("同時ログイン", func() {
		t := s.T()

		email := "concurrent@example.com"
		dbtest.CreateTestUser(t, s.DB, email, user.RoleCustomer.String())

		token1 := authtest.LoginUser(t, s.Router, email, dbtest.TestPassword)
		token2 := authtest.LoginUser(t, s.Router, email, dbtest.TestPassword)
		require.NotEqual(t, token1, token2, "同時ログインで同じトークンが返された")

		w1 := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token1)
		w2 := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token2)
		require.Equal(t, http.StatusOK, w1.Code, "最初のトークンが無効")
		require.Equal(t, http.StatusOK, w2.Code, "二番目のトークンが無効")
	})
}
