package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/wyfcoding/tradersroom/internal/wallet/application"
	"github.com/wyfcoding/tradersroom/internal/wallet/domain"
	walletmysql "github.com/wyfcoding/tradersroom/internal/wallet/infrastructure/persistence/mysql"
	"github.com/wyfcoding/tradersroom/pkg/middleware"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newWalletTestRouter(t *testing.T, userID uint) (*gin.Engine, domain.LedgerRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.WalletTransaction{}))

	ledger := walletmysql.NewLedgerRepository(db)
	h := NewWalletHandler(application.NewWalletService(ledger))

	r := gin.New()
	client := r.Group("/client", func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	})
	h.RegisterRoutes(client)
	return r, ledger
}

func walletDoRequest(router *gin.Engine, url string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBalanceEndpoint(t *testing.T) {
	router, ledger := newWalletTestRouter(t, 1)
	ctx := context.Background()

	require.NoError(t, ledger.Append(ctx, domain.NewDepositEntry(1, decimal.NewFromInt(100), 1, "")))
	require.NoError(t, ledger.Append(ctx, domain.NewWithdrawalEntry(1, decimal.NewFromInt(30), 2, "")))

	w := walletDoRequest(router, "/client/wallet/balance")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Balance decimal.Decimal `json:"balance"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.True(t, body.Data.Balance.Equal(decimal.NewFromInt(70)))
}

func TestTransactionsEndpointPaginates(t *testing.T) {
	router, ledger := newWalletTestRouter(t, 1)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		require.NoError(t, ledger.Append(ctx, domain.NewDepositEntry(1, decimal.NewFromInt(int64(i+1)), uint(i+1), "")))
	}

	w := walletDoRequest(router, "/client/wallet/transactions?page=2&limit=10")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Total      int64             `json:"total"`
			Page       int               `json:"page"`
			TotalPages int               `json:"totalPages"`
			Items      []json.RawMessage `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.EqualValues(t, 15, body.Data.Total)
	require.Equal(t, 2, body.Data.Page)
	require.Equal(t, 2, body.Data.TotalPages)
	require.Len(t, body.Data.Items, 5)
}
