package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
	"testing"
)

const testBotToken = "123456:TEST-TOKEN"

// signInitData builds a WebApp initData string with a valid signature.
func signInitData(t *testing.T, botToken string, fields map[string]string) string {
	t.Helper()

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+fields[k])
	}
	checkString := strings.Join(pairs, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(checkString))

	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return values.Encode()
}

func TestVerifyInitData(t *testing.T) {
	fields := map[string]string{
		"user":      `{"id":42,"first_name":"Test"}`,
		"auth_date": "1700000000",
		"query_id":  "AAE",
	}
	initData := signInitData(t, testBotToken, fields)

	userID, ok := verifyInitData(initData, testBotToken)
	if !ok {
		t.Fatal("expected valid init data to verify")
	}
	if userID != 42 {
		t.Errorf("userID = %d, want 42", userID)
	}
}

func TestVerifyInitDataWrongToken(t *testing.T) {
	fields := map[string]string{
		"user":      `{"id":42}`,
		"auth_date": "1700000000",
	}
	initData := signInitData(t, "999:OTHER-TOKEN", fields)

	if _, ok := verifyInitData(initData, testBotToken); ok {
		t.Error("expected verification to fail with a different bot token")
	}
}

func TestVerifyInitDataTampered(t *testing.T) {
	fields := map[string]string{
		"user":      `{"id":42}`,
		"auth_date": "1700000000",
	}
	initData := signInitData(t, testBotToken, fields)
	tampered := strings.Replace(initData, "42", "43", 1)

	if _, ok := verifyInitData(tampered, testBotToken); ok {
		t.Error("expected verification to fail for tampered data")
	}
}

func TestVerifyInitDataMissingPieces(t *testing.T) {
	cases := []struct {
		name     string
		initData string
	}{
		{"empty", ""},
		{"no hash", "user=%7B%22id%22%3A42%7D&auth_date=1700000000"},
		{"garbage", "%%%"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := verifyInitData(tc.initData, testBotToken); ok {
				t.Error("expected verification to fail")
			}
		})
	}
}

func TestVerifyInitDataNoUser(t *testing.T) {
	initData := signInitData(t, testBotToken, map[string]string{
		"auth_date": "1700000000",
	})
	if _, ok := verifyInitData(initData, testBotToken); ok {
		t.Error("expected verification to fail without a user field")
	}
}
