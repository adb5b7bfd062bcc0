package vnpay

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *Client {
	c := NewClient(Config{
		TmnCode:    "DEMO0001",
		HashSecret: "SECRETKEY",
		PayURL:     "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		ReturnURL:  "http://localhost:8080/api/payments/vnpay/return",
	})
	c.now = func() time.Time { return time.Date(2024, 3, 6, 3, 0, 0, 0, time.UTC) }
	return c
}

func TestBuildPaymentURL(t *testing.T) {
	c := newTestClient()

	raw, err := c.BuildPaymentURL(PaymentRequest{
		TxnRef:    "01HRABCDEF",
		Amount:    150000,
		OrderInfo: "Thanh toan don dat san BK-1",
		IPAddr:    "10.0.0.1",
	})
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()

	assert.Equal(t, "15000000", q.Get("vnp_Amount"))
	assert.Equal(t, "20240306100000", q.Get("vnp_CreateDate"))
	assert.Equal(t, "20240306101500", q.Get("vnp_ExpireDate"))
	assert.Equal(t, "2.1.0", q.Get("vnp_Version"))
	assert.Equal(t, "VND", q.Get("vnp_CurrCode"))
	assert.True(t, c.Verify(q), "url produced by the client must verify")
}

func TestBuildPaymentURLRejectsBadInput(t *testing.T) {
	c := newTestClient()
	_, err := c.BuildPaymentURL(PaymentRequest{TxnRef: "x", Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	empty := NewClient(Config{})
	_, err = empty.BuildPaymentURL(PaymentRequest{TxnRef: "x", Amount: 1000})
	assert.ErrorIs(t, err, ErrMissingConfig)
}

func signedCallback(secret string) url.Values {
	q := url.Values{}
	q.Set("vnp_TmnCode", "DEMO0001")
	q.Set("vnp_TxnRef", "01HRABCDEF")
	q.Set("vnp_Amount", "15000000")
	q.Set("vnp_ResponseCode", "00")
	q.Set("vnp_TransactionStatus", "00")
	q.Set("vnp_TransactionNo", "14123456")
	q.Set("vnp_OrderInfo", "Thanh toan don dat san")
	q.Set("vnp_PayDate", "20240306101010")
	q.Set(ParamSecureHash, Sign(CanonicalQuery(q), secret, HashSHA512))
	q.Set(ParamSecureHashType, HashSHA512)
	return q
}

func TestVerify(t *testing.T) {
	c := newTestClient()

	t.Run("valid signature", func(t *testing.T) {
		assert.True(t, c.Verify(signedCallback("SECRETKEY")))
	})

	t.Run("uppercase signature accepted", func(t *testing.T) {
		q := signedCallback("SECRETKEY")
		q.Set(ParamSecureHash, strings.ToUpper(q.Get(ParamSecureHash)))
		assert.True(t, c.Verify(q))
	})

	t.Run("tampered amount rejected", func(t *testing.T) {
		q := signedCallback("SECRETKEY")
		q.Set("vnp_Amount", "100")
		assert.False(t, c.Verify(q))
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		assert.False(t, c.Verify(signedCallback("OTHER")))
	})

	t.Run("missing signature rejected", func(t *testing.T) {
		q := signedCallback("SECRETKEY")
		q.Del(ParamSecureHash)
		assert.False(t, c.Verify(q))
	})
}

func TestParseResult(t *testing.T) {
	res, err := ParseResult(signedCallback("SECRETKEY"))
	require.NoError(t, err)

	assert.Equal(t, int64(150000), res.Amount)
	assert.Equal(t, "01HRABCDEF", res.TxnRef)
	assert.True(t, res.Succeeded())
	assert.Equal(t, 2024, res.PayDate.Year())

	_, err = ParseResult(url.Values{"vnp_Amount": {"10"}})
	assert.Error(t, err)
}

func TestCanonicalQuerySkipsEmptyAndForeign(t *testing.T) {
	q := url.Values{}
	q.Set("vnp_B", "2")
	q.Set("vnp_A", "a b")
	q.Set("vnp_Empty", "")
	q.Set("other", "x")
	assert.Equal(t, "vnp_A=a+b&vnp_B=2", CanonicalQuery(q))
}

func TestNewIPNResponse(t *testing.T) {
	assert.Equal(t, "Confirm Success", NewIPNResponse(RspSuccess).Message)
	assert.Equal(t, "Unknown error", NewIPNResponse("zz").Message)
}
