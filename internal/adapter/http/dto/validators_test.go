package dto

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"zerah-finance/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func bindJSON(t *testing.T, body string, dst interface{}) error {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte(body)))
	c.Request.Header.Set("Content-Type", "application/json")
	return c.ShouldBindJSON(dst)
}

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := TransferRequest{
		Currency:      " USD ",
		RecipientName: "  Ada Obi  ",
		AccountNumber: " 0123456789 ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "USD", req.Currency)
	assert.Equal(t, "Ada Obi", req.RecipientName)
	assert.Equal(t, "0123456789", req.AccountNumber)
}

func TestSanitizeStruct_KeepsTextVerbatim(t *testing.T) {
	req := TransferRequest{RecipientName: " O'Brien & Co ", BankName: "<Chase>"}
	SanitizeStruct(&req)

	assert.Equal(t, "O'Brien & Co", req.RecipientName)
	assert.Equal(t, "<Chase>", req.BankName)
}

func TestSanitizeStruct_SkipsNonStringFields(t *testing.T) {
	enabled := true
	req := BusinessModeRequest{Enabled: &enabled}
	SanitizeStruct(&req)
	assert.True(t, *req.Enabled)

	topup := TopupRequest{Amount: Amount{raw: `" 10.50 "`}, Currency: "eur "}
	SanitizeStruct(&topup)
	assert.Equal(t, `" 10.50 "`, topup.Amount.raw)
	assert.Equal(t, "eur", topup.Currency)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
}

// --- Custom Validator tests ---

func TestSafeID_Valid(t *testing.T) {
	cases := []string{
		"ref-001",
		"REF_002",
		"a.b.c",
		"0123456789",
		"GB29NWBK60161331926819",
	}
	for _, tc := range cases {
		assert.True(t, safeStringRe.MatchString(tc), "expected valid: %s", tc)
	}
}

func TestSafeID_Invalid(t *testing.T) {
	cases := []string{
		"ref 001",
		"ref<001>",
		"ref;DROP",
		"",
		"ref\n001",
	}
	for _, tc := range cases {
		assert.False(t, safeStringRe.MatchString(tc), "expected invalid: %s", tc)
	}
}

func TestBind_ConversionRequest(t *testing.T) {
	var req ConversionRequest
	require.NoError(t, bindJSON(t, `{"amount":"100.25","from":"usd","to":"NGN"}`, &req))
	amount, err := req.Amount.Decimal()
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("100.25")))
	assert.Equal(t, "usd", req.From)

	var numeric ConversionRequest
	require.NoError(t, bindJSON(t, `{"amount":42,"from":"USD","to":"EUR"}`, &numeric))
	amount, err = numeric.Amount.Decimal()
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(42)))
}

func TestBind_MalformedAmountIsInvalidAmount(t *testing.T) {
	for _, raw := range []string{`"abc"`, `"12.3.4"`, `""`, `null`, `true`, `{}`} {
		var req TopupRequest
		require.NoError(t, bindJSON(t, `{"amount":`+raw+`,"currency":"USD"}`, &req), raw)

		_, err := req.Amount.Decimal()
		assert.True(t, errors.Is(err, apperror.ErrInvalidAmount()), "%s: got %v", raw, err)
	}

	var missing TopupRequest
	require.NoError(t, bindJSON(t, `{"currency":"USD"}`, &missing))
	_, err := missing.Amount.Decimal()
	assert.True(t, errors.Is(err, apperror.ErrInvalidAmount()))

	var padded TopupRequest
	require.NoError(t, bindJSON(t, `{"amount":" 7.25 ","currency":"USD"}`, &padded))
	amount, err := padded.Amount.Decimal()
	require.NoError(t, err)
	assert.Equal(t, "7.25", amount.String())
}

func TestBind_CurrencyCodeShape(t *testing.T) {
	var req TopupRequest
	// Unsupported but well-formed codes pass binding; the ledger rejects them.
	assert.NoError(t, bindJSON(t, `{"amount":"1","currency":"JPY"}`, &req))
	assert.Error(t, bindJSON(t, `{"amount":"1","currency":"US"}`, &req))
	assert.Error(t, bindJSON(t, `{"amount":"1","currency":"U$D"}`, &req))
	assert.Error(t, bindJSON(t, `{"amount":"1"}`, &req))
}

func TestBind_TransferRequest(t *testing.T) {
	var req TransferRequest
	err := bindJSON(t, `{"amount":"100","currency":"USD","recipient_name":"Ada","account_number":"0123456789"}`, &req)
	require.NoError(t, err)
	assert.Empty(t, req.RecipientCurrency)

	err = bindJSON(t, `{"amount":"100","currency":"USD","recipient_name":"Ada","account_number":"01 23"}`, &req)
	assert.Error(t, err)

	err = bindJSON(t, `{"amount":"100","currency":"USD","account_number":"0123"}`, &req)
	assert.Error(t, err, "recipient name is required")
}

func TestBind_BusinessModeRequiresFlag(t *testing.T) {
	var req BusinessModeRequest
	assert.Error(t, bindJSON(t, `{}`, &req))

	require.NoError(t, bindJSON(t, `{"enabled":false}`, &req))
	assert.False(t, *req.Enabled)
}

func TestBind_SetLimitRequest(t *testing.T) {
	var req SetLimitRequest
	require.NoError(t, bindJSON(t, `{"limit":2500.5}`, &req))
	assert.Equal(t, "2500.5", req.Limit.String())

	assert.Error(t, bindJSON(t, `{}`, &req))
}
