package zalopay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"court-booking/pkg/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey1 = "sdngKKJmqEMzvh5QQcdD2A9XBSKUNaYn"
	testKey2 = "trMrHtvjo6myautxDUiAcYsVtaeQ8nhf"
)

func newTestClient(endpoint string) *Client {
	c := NewClient(Config{
		AppID:       2554,
		Key1:        testKey1,
		Key2:        testKey2,
		Endpoint:    endpoint,
		CallbackURL: "http://localhost:8080/api/payments/zalopay/callback",
	}, nil)
	c.now = func() time.Time { return time.UnixMilli(1709694000000) }
	return c
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/create", r.URL.Path)
		require.NoError(t, r.ParseForm())

		expected := OrderMAC(testKey1, 2554, r.FormValue("app_trans_id"), r.FormValue("app_user"), 200000,
			1709694000000, r.FormValue("embed_data"), r.FormValue("item"))
		assert.Equal(t, expected, r.FormValue("mac"))
		assert.Equal(t, "200000", r.FormValue("amount"))
		assert.Contains(t, r.FormValue("embed_data"), `"bookingId":"b-1"`)
		assert.Equal(t, "900", r.FormValue("expire_duration_seconds"))

		json.NewEncoder(w).Encode(map[string]any{
			"return_code":    1,
			"return_message": "Giao dịch thành công",
			"order_url":      "https://sb-openapi.zalopay.vn/pay/abc",
			"zp_trans_token": "tok",
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	resp, err := c.CreateOrder(context.Background(), OrderRequest{
		AppTransID:  "240306_0001",
		AppUser:     "u-1",
		Amount:      200000,
		Description: "Court booking",
		Embed:       EmbedData{BookingID: "b-1"},
	})
	require.NoError(t, err)
	assert.True(t, resp.Succeeded())
	assert.Equal(t, "https://sb-openapi.zalopay.vn/pay/abc", resp.OrderURL)
}

func TestCreateOrderUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateOrder(context.Background(), OrderRequest{AppTransID: "x", Amount: 1000})
	assert.Error(t, err)
}

func TestQueryOrderMAC(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, payment.HMACSHA256Hex(testKey1, "2554|240306_0001|"+testKey1), r.FormValue("mac"))
		w.Write([]byte(`{"return_code":1,"amount":200000,"zp_trans_id":99}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).QueryOrder(context.Background(), "240306_0001")
	require.NoError(t, err)
	assert.Equal(t, int64(200000), resp.Amount)
	assert.Equal(t, int64(99), resp.ZpTransID)
}

func buildCallbackBody(t *testing.T, key string) ([]byte, string) {
	data := `{"app_id":2554,"app_trans_id":"240306_0001","amount":200000,"zp_trans_id":99,"embed_data":"{\"bookingId\":\"b-1\"}"}`
	body, err := json.Marshal(Callback{Data: data, MAC: payment.HMACSHA256Hex(key, data), Type: 1})
	require.NoError(t, err)
	return body, data
}

func TestCallbackVerification(t *testing.T) {
	c := newTestClient("http://unused")

	t.Run("plain object body", func(t *testing.T) {
		body, _ := buildCallbackBody(t, testKey2)
		cb, err := ParseCallback(body)
		require.NoError(t, err)
		assert.True(t, c.VerifyCallback(cb))

		data, err := cb.Decode()
		require.NoError(t, err)
		assert.Equal(t, "240306_0001", data.AppTransID)

		embed, err := data.Embed()
		require.NoError(t, err)
		assert.Equal(t, "b-1", embed.BookingID)
	})

	t.Run("double escaped body", func(t *testing.T) {
		body, _ := buildCallbackBody(t, testKey2)
		wrapped, err := json.Marshal(string(body))
		require.NoError(t, err)

		cb, err := ParseCallback(wrapped)
		require.NoError(t, err)
		assert.True(t, c.VerifyCallback(cb))
	})

	t.Run("uppercase mac accepted", func(t *testing.T) {
		body, _ := buildCallbackBody(t, testKey2)
		cb, err := ParseCallback(body)
		require.NoError(t, err)
		cb.MAC = strings.ToUpper(cb.MAC)
		assert.True(t, c.VerifyCallback(cb))
	})

	t.Run("signed with wrong key", func(t *testing.T) {
		body, _ := buildCallbackBody(t, testKey1)
		cb, err := ParseCallback(body)
		require.NoError(t, err)
		assert.False(t, c.VerifyCallback(cb))
	})

	t.Run("malformed body", func(t *testing.T) {
		_, err := ParseCallback([]byte(`not json`))
		assert.ErrorIs(t, err, ErrMalformedBody)

		_, err = ParseCallback([]byte(`{"type":1}`))
		assert.ErrorIs(t, err, ErrMalformedBody)
	})
}

func TestEmbedDoubleEscaped(t *testing.T) {
	d := &CallbackData{EmbedData: `"{\"commissionId\":\"c-9\"}"`}
	embed, err := d.Embed()
	require.NoError(t, err)
	assert.Equal(t, "c-9", embed.CommissionID)
}
