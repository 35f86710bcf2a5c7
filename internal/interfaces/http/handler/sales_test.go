package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordSale(t *testing.T, router http.Handler, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User", "admin")
	router.ServeHTTP(w, req)
	return w, decodeEnvelope(t, w)
}

func TestSalesHandler_Record(t *testing.T) {
	router, _ := newTestServer(t)
	todayPrefix := "JL-" + time.Now().Format("20060102") + "-"

	t.Run("mints a receipt number when none is supplied", func(t *testing.T) {
		w, env := recordSale(t, router, `{
			"buyer_name": "Budi",
			"quantity": 3,
			"unit_price": "1500000",
			"paid": "2000000"
		}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var sale SaleResponse
		require.NoError(t, json.Unmarshal(env.Data, &sale))
		assert.Equal(t, todayPrefix+"001", sale.ReceiptNumber)
		assert.Equal(t, "4500000", sale.TotalPrice)
		assert.Equal(t, "2500000", sale.Outstanding)
		assert.False(t, sale.Settled)
		assert.Equal(t, "admin", sale.RecordedBy)
	})

	t.Run("numbers keep counting within the day", func(t *testing.T) {
		w, env := recordSale(t, router, `{
			"buyer_name": "Siti",
			"quantity": 1,
			"unit_price": "1000000",
			"paid": "1000000"
		}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var sale SaleResponse
		require.NoError(t, json.Unmarshal(env.Data, &sale))
		assert.Equal(t, todayPrefix+"002", sale.ReceiptNumber)
		assert.True(t, sale.Settled)
	})

	t.Run("a supplied duplicate receipt returns 409", func(t *testing.T) {
		w, env := recordSale(t, router, `{
			"receipt_number": "`+todayPrefix+`001",
			"buyer_name": "Andi",
			"quantity": 1,
			"unit_price": "500000"
		}`)
		assert.Equal(t, http.StatusConflict, w.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "ERR_DUPLICATE_RECEIPT", env.Error.Code)
	})

	t.Run("a non-decimal unit price returns 400", func(t *testing.T) {
		w, _ := recordSale(t, router, `{
			"buyer_name": "Andi",
			"quantity": 1,
			"unit_price": "sejuta"
		}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("a malformed date returns 400", func(t *testing.T) {
		w, _ := recordSale(t, router, `{
			"buyer_name": "Andi",
			"quantity": 1,
			"unit_price": "500000",
			"date": "31-08-2026"
		}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing buyer name fails binding", func(t *testing.T) {
		w, _ := recordSale(t, router, `{
			"quantity": 1,
			"unit_price": "500000"
		}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSalesHandler_ListAndOverview(t *testing.T) {
	router, _ := newTestServer(t)

	w, _ := recordSale(t, router, `{"buyer_name": "Budi", "quantity": 3, "unit_price": "1500000", "paid": "4500000"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = recordSale(t, router, `{"buyer_name": "Siti", "quantity": 2, "unit_price": "1000000", "paid": "500000"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("lists sales with the total", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sales", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		env := decodeEnvelope(t, w)
		require.NotNil(t, env.Meta)
		assert.Equal(t, int64(2), env.Meta.Total)
	})

	t.Run("overview aggregates the ledger", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/sales/overview", nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		env := decodeEnvelope(t, w)
		var overview struct {
			TotalRevenue   string `json:"total_revenue"`
			TotalUnitsSold int64  `json:"total_units_sold"`
			CountUnpaid    int64  `json:"count_unpaid"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &overview))
		assert.Equal(t, "6500000", overview.TotalRevenue)
		assert.Equal(t, int64(5), overview.TotalUnitsSold)
		assert.Equal(t, int64(1), overview.CountUnpaid)
	})

	t.Run("next receipt previews without reserving", func(t *testing.T) {
		expected := "JL-" + time.Now().Format("20060102") + "-003"

		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/v1/sales/next-receipt", nil)
			router.ServeHTTP(w, req)
			require.Equal(t, http.StatusOK, w.Code)

			env := decodeEnvelope(t, w)
			var preview map[string]string
			require.NoError(t, json.Unmarshal(env.Data, &preview))
			assert.Equal(t, expected, preview["receipt_number"], "preview must not consume numbers")
		}
	})
}

func TestSalesHandler_Delete(t *testing.T) {
	router, _ := newTestServer(t)

	w, env := recordSale(t, router, `{"buyer_name": "Budi", "quantity": 1, "unit_price": "1000000"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var sale SaleResponse
	require.NoError(t, json.Unmarshal(env.Data, &sale))

	t.Run("deletes an existing sale", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/sales/"+itoa(sale.ID), nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/api/v1/sales/"+itoa(sale.ID), nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("deleting a missing sale returns 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/sales/999", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
