// Package zalopay talks to the ZaloPay v2 order API and verifies its callbacks.
package zalopay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"court-booking/pkg/payment"
)

// return_code values of the order API
const (
	CodeSuccess    = 1
	CodeFailed     = 2
	CodeProcessing = 3
)

// return_code values of the callback acknowledgement
const (
	AckSuccess        = 1
	AckRetry          = 0
	AckInvalidRequest = -1
)

var (
	ErrMissingConfig   = errors.New("zalopay: app id and keys are required")
	ErrInvalidAmount   = errors.New("zalopay: amount must be positive")
	ErrMalformedBody   = errors.New("zalopay: malformed callback body")
	ErrInvalidCallback = errors.New("zalopay: callback mac mismatch")
)

// HTTPDoer is satisfied by *http.Client and by the circuit breaking client
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	AppID       int
	Key1        string
	Key2        string
	Endpoint    string
	CallbackURL string
	RedirectURL string
	// ExpireMinutes bounds how long the order can be paid, 15 when unset
	ExpireMinutes int
}

type Client struct {
	cfg  Config
	http HTTPDoer
	now  func() time.Time
}

func NewClient(cfg Config, doer HTTPDoer) *Client {
	if doer == nil {
		doer = &http.Client{Timeout: 15 * time.Second}
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	if cfg.ExpireMinutes <= 0 {
		cfg.ExpireMinutes = 15
	}
	return &Client{cfg: cfg, http: doer, now: time.Now}
}

func (c *Client) Configured() bool {
	return c.cfg.AppID != 0 && c.cfg.Key1 != "" && c.cfg.Key2 != ""
}

type Item struct {
	ItemID       string `json:"itemid"`
	ItemName     string `json:"itemname"`
	ItemPrice    int64  `json:"itemprice"`
	ItemQuantity int    `json:"itemquantity"`
}

// EmbedData travels with the order and comes back unchanged in the callback
type EmbedData struct {
	RedirectURL  string `json:"redirecturl,omitempty"`
	BookingID    string `json:"bookingId,omitempty"`
	CommissionID string `json:"commissionId,omitempty"`
}

type OrderRequest struct {
	AppTransID  string
	AppUser     string
	Amount      int64 // VND
	Description string
	BankCode    string
	Embed       EmbedData
	Items       []Item
}

type OrderResponse struct {
	ReturnCode       int    `json:"return_code"`
	ReturnMessage    string `json:"return_message"`
	SubReturnCode    int    `json:"sub_return_code"`
	SubReturnMessage string `json:"sub_return_message"`
	OrderURL         string `json:"order_url"`
	ZpTransToken     string `json:"zp_trans_token"`
	OrderToken       string `json:"order_token"`
}

func (r *OrderResponse) Succeeded() bool { return r.ReturnCode == CodeSuccess }

// OrderMAC signs app_id|app_trans_id|app_user|amount|app_time|embed_data|item with key1
func OrderMAC(key1 string, appID int, appTransID, appUser string, amount, appTime int64, embedData, item string) string {
	data := strings.Join([]string{
		strconv.Itoa(appID),
		appTransID,
		appUser,
		strconv.FormatInt(amount, 10),
		strconv.FormatInt(appTime, 10),
		embedData,
		item,
	}, "|")
	return payment.HMACSHA256Hex(key1, data)
}

func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*OrderResponse, error) {
	if !c.Configured() {
		return nil, ErrMissingConfig
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	embed := req.Embed
	if embed.RedirectURL == "" {
		embed.RedirectURL = c.cfg.RedirectURL
	}
	embedJSON, err := json.Marshal(embed)
	if err != nil {
		return nil, fmt.Errorf("zalopay: encode embed_data: %w", err)
	}

	items := req.Items
	if items == nil {
		items = []Item{}
	}
	itemJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("zalopay: encode item: %w", err)
	}

	appUser := req.AppUser
	if appUser == "" {
		appUser = "user"
	}
	appTime := c.now().UnixMilli()

	form := url.Values{}
	form.Set("app_id", strconv.Itoa(c.cfg.AppID))
	form.Set("app_user", appUser)
	form.Set("app_trans_id", req.AppTransID)
	form.Set("app_time", strconv.FormatInt(appTime, 10))
	form.Set("amount", strconv.FormatInt(req.Amount, 10))
	form.Set("item", string(itemJSON))
	form.Set("embed_data", string(embedJSON))
	form.Set("description", req.Description)
	form.Set("bank_code", req.BankCode)
	form.Set("expire_duration_seconds", strconv.Itoa(c.cfg.ExpireMinutes*60))
	if c.cfg.CallbackURL != "" {
		form.Set("callback_url", c.cfg.CallbackURL)
	}
	form.Set("mac", OrderMAC(c.cfg.Key1, c.cfg.AppID, req.AppTransID, appUser, req.Amount, appTime, string(embedJSON), string(itemJSON)))

	var out OrderResponse
	if err := c.postForm(ctx, "/create", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type QueryResponse struct {
	ReturnCode       int    `json:"return_code"`
	ReturnMessage    string `json:"return_message"`
	SubReturnCode    int    `json:"sub_return_code"`
	SubReturnMessage string `json:"sub_return_message"`
	IsProcessing     bool   `json:"is_processing"`
	Amount           int64  `json:"amount"`
	ZpTransID        int64  `json:"zp_trans_id"`
}

// QueryOrder asks ZaloPay for the status of an order, mac = app_id|app_trans_id|key1
func (c *Client) QueryOrder(ctx context.Context, appTransID string) (*QueryResponse, error) {
	if !c.Configured() {
		return nil, ErrMissingConfig
	}

	appID := strconv.Itoa(c.cfg.AppID)
	form := url.Values{}
	form.Set("app_id", appID)
	form.Set("app_trans_id", appTransID)
	form.Set("mac", payment.HMACSHA256Hex(c.cfg.Key1, appID+"|"+appTransID+"|"+c.cfg.Key1))

	var out QueryResponse
	if err := c.postForm(ctx, "/query", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("zalopay: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("zalopay: %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("zalopay: read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("zalopay: %s: unexpected status %d", path, resp.StatusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("zalopay: decode response: %w", err)
	}
	return nil
}

// Callback is the body ZaloPay posts to callback_url
type Callback struct {
	Data string `json:"data"`
	MAC  string `json:"mac"`
	Type int    `json:"type"`
}

// ParseCallback accepts the body either as an object or as a JSON string
// wrapping that object.
func ParseCallback(body []byte) (*Callback, error) {
	body = []byte(strings.TrimSpace(string(body)))
	if len(body) == 0 {
		return nil, ErrMalformedBody
	}

	if body[0] == '"' {
		var inner string
		if err := json.Unmarshal(body, &inner); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
		}
		body = []byte(inner)
	}

	var cb Callback
	if err := json.Unmarshal(body, &cb); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if cb.Data == "" || cb.MAC == "" {
		return nil, ErrMalformedBody
	}
	return &cb, nil
}

// VerifyCallback checks mac = HMAC-SHA256(key2, data)
func (c *Client) VerifyCallback(cb *Callback) bool {
	if cb == nil || c.cfg.Key2 == "" {
		return false
	}
	return payment.EqualHex(payment.HMACSHA256Hex(c.cfg.Key2, cb.Data), cb.MAC)
}

type CallbackData struct {
	AppID          int    `json:"app_id"`
	AppTransID     string `json:"app_trans_id"`
	AppTime        int64  `json:"app_time"`
	AppUser        string `json:"app_user"`
	Amount         int64  `json:"amount"`
	EmbedData      string `json:"embed_data"`
	Item           string `json:"item"`
	ZpTransID      int64  `json:"zp_trans_id"`
	ServerTime     int64  `json:"server_time"`
	Channel        int    `json:"channel"`
	MerchantUserID string `json:"merchant_user_id"`
	UserFeeAmount  int64  `json:"user_fee_amount"`
	DiscountAmount int64  `json:"discount_amount"`
}

func (cb *Callback) Decode() (*CallbackData, error) {
	var data CallbackData
	if err := json.Unmarshal([]byte(cb.Data), &data); err != nil {
		return nil, fmt.Errorf("%w: data: %v", ErrMalformedBody, err)
	}
	return &data, nil
}

// Embed decodes embed_data, tolerating one extra level of string escaping
func (d *CallbackData) Embed() (*EmbedData, error) {
	raw := strings.TrimSpace(d.EmbedData)
	if raw == "" {
		return &EmbedData{}, nil
	}
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal([]byte(raw), &inner); err != nil {
			return nil, fmt.Errorf("%w: embed_data: %v", ErrMalformedBody, err)
		}
		raw = inner
	}

	var embed EmbedData
	if err := json.Unmarshal([]byte(raw), &embed); err != nil {
		return nil, fmt.Errorf("%w: embed_data: %v", ErrMalformedBody, err)
	}
	return &embed, nil
}

type CallbackAck struct {
	ReturnCode    int    `json:"return_code"`
	ReturnMessage string `json:"return_message"`
}
