package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(uuidStr))
}

// ==================== OTP ====================

func GenerateOTP(length int) string {
	if length <= 0 {
		length = 6
	}

	var sb strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			n = big.NewInt(time.Now().UnixNano() % 10)
		}
		sb.WriteString(n.String())
	}

	return sb.String()
}

// ==================== ORDER CODES ====================

// GenerateBookingCode returns a short human readable code, e.g. BK-20240116-4K7Q2M
func GenerateBookingCode() string {
	now := time.Now()
	id := ulid.Make().String()
	return fmt.Sprintf("BK-%s-%s", now.Format("20060102"), id[len(id)-6:])
}

// GenerateTxnRef returns a gateway transaction reference (ULIDs sort by creation time)
func GenerateTxnRef() string {
	return ulid.Make().String()
}

// GenerateAppTransID builds a ZaloPay app_trans_id, which must start with the yymmdd
// of the order date in GMT+7.
func GenerateAppTransID(now time.Time) string {
	loc := time.FixedZone("ICT", 7*60*60)
	id := ulid.Make().String()
	return now.In(loc).Format("060102") + "_" + id[len(id)-10:]
}

// ==================== PARSING ====================

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}
