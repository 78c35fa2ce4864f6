package util_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	oaerrors "github.com/go-openapi/errors"
	"github.com/labstack/echo/v4"
	"github.com/paypost/go-paypost/internal/types"
	"github.com/paypost/go-paypost/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestBindAndValidateBody(t *testing.T) {
	c, _ := newContext(`{"owner":"did:privy:abc"}`)

	var body types.PostCreateWalletPayload
	require.NoError(t, util.BindAndValidateBody(c, &body))
	assert.Equal(t, "did:privy:abc", *body.Owner)
}

func TestBindAndValidateBodyMissingField(t *testing.T) {
	c, _ := newContext(`{}`)

	var body types.PostCreateWalletPayload
	err := util.BindAndValidateBody(c, &body)
	require.Error(t, err)

	var compErr *oaerrors.CompositeError
	require.ErrorAs(t, err, &compErr)
}

func TestBindAndValidateBodyMalformed(t *testing.T) {
	c, _ := newContext(`{"owner":`)

	var body types.PostCreateWalletPayload
	err := util.BindAndValidateBody(c, &body)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestValidateAndReturn(t *testing.T) {
	c, rec := newContext("")

	addr := "0x1"
	balance := "1.5"
	octas := uint64(150000000)
	require.NoError(t, util.ValidateAndReturn(c, http.StatusOK, &types.BalanceResponse{Address: &addr, Balance: &balance, Octas: &octas}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"address":"0x1","balance":"1.5","octas":150000000}`, rec.Body.String())

	c, _ = newContext("")
	require.Error(t, util.ValidateAndReturn(c, http.StatusOK, &types.BalanceResponse{}))
}
