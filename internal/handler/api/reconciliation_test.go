//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"storefront-api/internal/handler/api"
	"storefront-api/internal/usecase/commands"
	"storefront-api/internal/usecase/queries"
	"storefront-api/internal/usecase/shared"
	"storefront-api/tests/common/httptest"
	commandsmock "storefront-api/tests/mock/commands"
	queriesmock "storefront-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReconciliationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReconciliationCommands
	mockQueries  *queriesmock.MockReconciliationQueries
}

func (s *ReconciliationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReconciliationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReconciliationQueries(s.mockCtrl)
	h := api.NewReconciliationHandler(s.mockCommands, s.mockQueries)

	s.router.GET("/reconciliation", h.ListPending)
	s.router.POST("/reconciliation/:id/resolve", h.Resolve)
}

func (s *ReconciliationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReconciliationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationHandlerTestSuite))
}

func (s *ReconciliationHandlerTestSuite) TestListPending() {
	s.Run("成功: ペイロードをそのまま返す", func() {
		now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
		job := &queries.NotificationJobView{
			ID:        uuid.New(),
			Topic:     shared.TopicPaymentCapturedOrderFailed,
			Payload:   []byte(`{"paymentReference":"order_X","amountMinor":900}`),
			Status:    "queued",
			RunAt:     now,
			CreatedAt: now,
		}
		s.mockQueries.EXPECT().ListPending(gomock.Any(), 10).Return([]*queries.NotificationJobView{job}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reconciliation?limit=10", nil, "")

		var response []map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 1)
		s.Equal(job.ID.String(), response[0]["id"])
		payload, ok := response[0]["payload"].(map[string]any)
		s.Require().True(ok)
		s.Equal("order_X", payload["paymentReference"])
	})
}

func (s *ReconciliationHandlerTestSuite) TestResolve() {
	id := uuid.New()
	url := "/reconciliation/" + id.String() + "/resolve"

	s.Run("成功: メモ付きで解決する", func() {
		s.mockCommands.EXPECT().Resolve(gomock.Any(), id, "refunded via dashboard").Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"note": "refunded via dashboard"}, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("成功: ボディなしでも解決できる", func() {
		s.mockCommands.EXPECT().Resolve(gomock.Any(), id, "").Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("失敗: 存在しないジョブ", func() {
		s.mockCommands.EXPECT().Resolve(gomock.Any(), id, "").Return(commands.ErrReconciliationJobNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorCode(s.T(), rec, http.StatusNotFound, "NOT_FOUND")
	})
}
