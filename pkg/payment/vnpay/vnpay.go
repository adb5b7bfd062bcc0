// Package vnpay builds signed VNPay checkout URLs and verifies return/IPN callbacks.
package vnpay

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"court-booking/pkg/payment"
)

const (
	Version      = "2.1.0"
	CommandPay   = "pay"
	CurrencyVND  = "VND"
	DefaultOrder = "other"
	dateLayout   = "20060102150405"

	HashSHA256 = "HMACSHA256"
	HashSHA512 = "HMACSHA512"

	ParamSecureHash     = "vnp_SecureHash"
	ParamSecureHashType = "vnp_SecureHashType"
)

// IPN reply codes expected by VNPay
const (
	RspSuccess          = "00"
	RspOrderNotFound    = "01"
	RspAlreadyConfirmed = "02"
	RspInvalidAmount    = "04"
	RspInvalidSignature = "97"
	RspUnknownError     = "99"
)

var (
	ErrMissingConfig = errors.New("vnpay: tmn code and hash secret are required")
	ErrInvalidAmount = errors.New("vnpay: amount must be positive")
)

// VNPay timestamps are always Vietnam local time
var vietnamTime = time.FixedZone("ICT", 7*60*60)

type Config struct {
	TmnCode       string
	HashSecret    string
	PayURL        string
	ReturnURL     string
	HashType      string
	ExpireMinutes int
}

type Client struct {
	cfg Config
	now func() time.Time
}

func NewClient(cfg Config) *Client {
	if cfg.HashType == "" {
		cfg.HashType = HashSHA512
	}
	if cfg.ExpireMinutes <= 0 {
		cfg.ExpireMinutes = 15
	}
	return &Client{cfg: cfg, now: time.Now}
}

// WithMerchant returns a copy signing with a merchant's own terminal credentials
func (c *Client) WithMerchant(tmnCode, hashSecret string) *Client {
	cfg := c.cfg
	cfg.TmnCode = tmnCode
	cfg.HashSecret = hashSecret
	return &Client{cfg: cfg, now: c.now}
}

func (c *Client) Configured() bool {
	return c.cfg.TmnCode != "" && c.cfg.HashSecret != ""
}

type PaymentRequest struct {
	TxnRef    string
	Amount    int64 // VND
	OrderInfo string
	OrderType string
	IPAddr    string
	BankCode  string
	Locale    string
	ReturnURL string
}

// BuildPaymentURL returns the checkout URL the customer is redirected to
func (c *Client) BuildPaymentURL(req PaymentRequest) (string, error) {
	if !c.Configured() {
		return "", ErrMissingConfig
	}
	if req.Amount <= 0 {
		return "", ErrInvalidAmount
	}

	now := c.now().In(vietnamTime)
	locale := req.Locale
	if locale == "" {
		locale = "vn"
	}
	orderType := req.OrderType
	if orderType == "" {
		orderType = DefaultOrder
	}
	returnURL := req.ReturnURL
	if returnURL == "" {
		returnURL = c.cfg.ReturnURL
	}
	ip := req.IPAddr
	if ip == "" {
		ip = "127.0.0.1"
	}

	params := url.Values{}
	params.Set("vnp_Version", Version)
	params.Set("vnp_Command", CommandPay)
	params.Set("vnp_TmnCode", c.cfg.TmnCode)
	params.Set("vnp_Amount", strconv.FormatInt(req.Amount*100, 10))
	params.Set("vnp_CreateDate", now.Format(dateLayout))
	params.Set("vnp_ExpireDate", now.Add(time.Duration(c.cfg.ExpireMinutes)*time.Minute).Format(dateLayout))
	params.Set("vnp_CurrCode", CurrencyVND)
	params.Set("vnp_IpAddr", ip)
	params.Set("vnp_Locale", locale)
	params.Set("vnp_OrderInfo", req.OrderInfo)
	params.Set("vnp_OrderType", orderType)
	params.Set("vnp_ReturnUrl", returnURL)
	params.Set("vnp_TxnRef", req.TxnRef)
	if req.BankCode != "" {
		params.Set("vnp_BankCode", req.BankCode)
	}

	query := CanonicalQuery(params)
	signature := Sign(query, c.cfg.HashSecret, c.cfg.HashType)

	return fmt.Sprintf("%s?%s&%s=%s", c.cfg.PayURL, query, ParamSecureHash, signature), nil
}

// CanonicalQuery sorts vnp_ parameters by key and url-encodes them, skipping
// empty values and the signature fields themselves.
func CanonicalQuery(params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == ParamSecureHash || k == ParamSecureHashType {
			continue
		}
		if !strings.HasPrefix(k, "vnp_") || params.Get(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(params.Get(k)))
	}
	return sb.String()
}

func Sign(data, secret, hashType string) string {
	if strings.EqualFold(hashType, HashSHA256) {
		return payment.HMACSHA256Hex(secret, data)
	}
	return payment.HMACSHA512Hex(secret, data)
}

// Verify recomputes the signature over the received parameters
func (c *Client) Verify(params url.Values) bool {
	return Verify(params, c.cfg.HashSecret, c.cfg.HashType)
}

func Verify(params url.Values, secret, hashType string) bool {
	if secret == "" {
		return false
	}
	expected := Sign(CanonicalQuery(params), secret, hashType)
	return payment.EqualHex(expected, params.Get(ParamSecureHash))
}

type Result struct {
	TmnCode           string
	TxnRef            string
	Amount            int64 // VND
	ResponseCode      string
	TransactionStatus string
	TransactionNo     string
	BankCode          string
	PayDate           time.Time
	OrderInfo         string
}

// Succeeded reports VNPay's own success marker on both codes
func (r *Result) Succeeded() bool {
	return r.ResponseCode == "00" && (r.TransactionStatus == "" || r.TransactionStatus == "00")
}

// ParseResult reads the callback fields used for reconciliation
func ParseResult(params url.Values) (*Result, error) {
	txnRef := params.Get("vnp_TxnRef")
	if txnRef == "" {
		return nil, errors.New("vnpay: missing vnp_TxnRef")
	}

	raw, err := strconv.ParseInt(params.Get("vnp_Amount"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("vnpay: invalid vnp_Amount: %w", err)
	}

	result := &Result{
		TmnCode:           params.Get("vnp_TmnCode"),
		TxnRef:            txnRef,
		Amount:            raw / 100,
		ResponseCode:      params.Get("vnp_ResponseCode"),
		TransactionStatus: params.Get("vnp_TransactionStatus"),
		TransactionNo:     params.Get("vnp_TransactionNo"),
		BankCode:          params.Get("vnp_BankCode"),
		OrderInfo:         params.Get("vnp_OrderInfo"),
	}

	if payDate := params.Get("vnp_PayDate"); payDate != "" {
		if t, err := time.ParseInLocation(dateLayout, payDate, vietnamTime); err == nil {
			result.PayDate = t
		}
	}

	return result, nil
}

type IPNResponse struct {
	RspCode string `json:"RspCode"`
	Message string `json:"Message"`
}

func NewIPNResponse(code string) IPNResponse {
	messages := map[string]string{
		RspSuccess:          "Confirm Success",
		RspOrderNotFound:    "Order not found",
		RspAlreadyConfirmed: "Order already confirmed",
		RspInvalidAmount:    "Invalid amount",
		RspInvalidSignature: "Invalid signature",
		RspUnknownError:     "Unknown error",
	}
	msg, ok := messages[code]
	if !ok {
		msg = messages[RspUnknownError]
	}
	return IPNResponse{RspCode: code, Message: msg}
}
