package shipping_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecomjrm/storefront-api/internal/shipping"
)

func TestQuoteReturnsRates(t *testing.T) {
	t.Parallel()

	handler := shipping.QuoteHandler{Client: shipping.MockClient{}}

	body := `{"pickupPostcode":"40000","deliverPostcode":"47301","weightKg":1.5}`
	req := httptest.NewRequest(http.MethodPost, "/shipping/quote", strings.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Quote(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []shipping.Rate `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 2)
	require.Equal(t, "poslaju", resp.Data[0].Courier)
	require.Positive(t, resp.Data[0].Price)
}

func TestQuoteRequiresPostcodes(t *testing.T) {
	t.Parallel()

	handler := shipping.QuoteHandler{Client: shipping.MockClient{}}

	req := httptest.NewRequest(http.MethodPost, "/shipping/quote", strings.NewReader(`{"weightKg":2}`))
	rec := httptest.NewRecorder()

	handler.Quote(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
