package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gamestore/internal/dto"
	"gamestore/internal/repository"
	"gamestore/internal/service"
	"gamestore/internal/token"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCheckout struct {
	resp *dto.CheckoutResponse
	err  error
}

func (s *stubCheckout) CreateSession(ctx context.Context, gameID, email, providerName string) (*dto.CheckoutResponse, error) {
	return s.resp, s.err
}

type stubFulfillment struct {
	err error
}

func (s *stubFulfillment) HandleWebhook(ctx context.Context, providerName string, headers http.Header, body []byte) error {
	return s.err
}

type stubDownload struct {
	url  string
	list *dto.DownloadListResponse
	err  error
}

func (s *stubDownload) ResolveDownload(ctx context.Context, gameID, filename, tok string) (string, error) {
	return s.url, s.err
}

func (s *stubDownload) ListDownloads(ctx context.Context, gameID, tok string) (*dto.DownloadListResponse, error) {
	return s.list, s.err
}

func (s *stubDownload) IssueURL(ctx context.Context, gameID, filename string) (string, error) {
	return s.url, s.err
}

type stubRecovery struct {
	resp *dto.RecoverResponse
	err  error
}

func (s *stubRecovery) Recover(ctx context.Context, email string) (*dto.RecoverResponse, error) {
	return s.resp, s.err
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, h(e.NewContext(req, rec)))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *dto.ErrorResponse {
	t.Helper()
	var envelope dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return &envelope
}

func TestCheckoutHandler(t *testing.T) {
	t.Run("session created", func(t *testing.T) {
		h := NewCheckoutHandler(&stubCheckout{resp: &dto.CheckoutResponse{SessionID: "cs_test"}}, "http://localhost:8080", zerolog.Nop())

		rec := doJSON(t, h.Checkout, http.MethodPost, "/checkout", `{"gameId":"demo-game","email":"foo@bar.com"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.CheckoutResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "cs_test", resp.SessionID)
	})

	t.Run("already purchased returns 409 with recovery url", func(t *testing.T) {
		h := NewCheckoutHandler(&stubCheckout{err: service.ErrAlreadyPurchased}, "http://localhost:8080", zerolog.Nop())

		rec := doJSON(t, h.Checkout, http.MethodPost, "/checkout", `{"gameId":"demo-game","email":"foo@bar.com"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		envelope := decodeError(t, rec)
		assert.Equal(t, "ALREADY_PURCHASED", envelope.Code)
		assert.Equal(t, "http://localhost:8080/recover-download", envelope.RecoveryURL)
	})

	t.Run("unknown game returns 404", func(t *testing.T) {
		h := NewCheckoutHandler(&stubCheckout{err: repository.ErrGameNotFound}, "http://localhost:8080", zerolog.Nop())

		rec := doJSON(t, h.Checkout, http.MethodPost, "/checkout", `{"gameId":"ghost","email":"foo@bar.com"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "NOT_FOUND", decodeError(t, rec).Code)
	})

	t.Run("invalid email returns 400", func(t *testing.T) {
		h := NewCheckoutHandler(&stubCheckout{err: service.ErrInvalidEmail}, "http://localhost:8080", zerolog.Nop())

		rec := doJSON(t, h.Checkout, http.MethodPost, "/checkout", `{"gameId":"demo-game","email":"nope"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec).Code)
	})
}

func TestWebhookHandler(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		h := NewWebhookHandler(&stubFulfillment{}, "stripe", zerolog.Nop())

		rec := doJSON(t, h.HandleWebhook, http.MethodPost, "/webhook", `{}`)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("upstream failure returns 500", func(t *testing.T) {
		h := NewWebhookHandler(&stubFulfillment{err: errStub}, "stripe", zerolog.Nop())

		rec := doJSON(t, h.HandleWebhook, http.MethodPost, "/webhook", `{}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "INTERNAL_ERROR", decodeError(t, rec).Code)
	})
}

func TestDownloadHandler(t *testing.T) {
	t.Run("redirects to signed url", func(t *testing.T) {
		h := NewDownloadHandler(&stubDownload{url: "https://cdn.example.com/signed"}, zerolog.Nop())

		rec := doJSON(t, h.Download, http.MethodGet, "/download?gameId=demo-game&filename=a.zip&token=tok", "")

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "https://cdn.example.com/signed", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("expired token returns 401", func(t *testing.T) {
		h := NewDownloadHandler(&stubDownload{err: token.ErrExpired}, zerolog.Nop())

		rec := doJSON(t, h.Download, http.MethodGet, "/download?gameId=demo-game&filename=a.zip&token=tok", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "TOKEN_EXPIRED", decodeError(t, rec).Code)
	})

	t.Run("undeclared file returns 404", func(t *testing.T) {
		h := NewDownloadHandler(&stubDownload{err: service.ErrFileNotFound}, zerolog.Nop())

		rec := doJSON(t, h.Download, http.MethodGet, "/download?gameId=demo-game&filename=a.zip&token=tok", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("download page lists files", func(t *testing.T) {
		h := NewDownloadHandler(&stubDownload{list: &dto.DownloadListResponse{
			GameID:    "demo-game",
			GameTitle: "Demo Game",
			Files:     []dto.DownloadFileEntry{{Filename: "a.zip", URL: "http://localhost:8080/download?gameId=demo-game&filename=a.zip&token=tok"}},
		}}, zerolog.Nop())

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/download/demo-game?token=tok", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/download/:gameId")
		c.SetParamNames("gameId")
		c.SetParamValues("demo-game")
		require.NoError(t, h.DownloadPage(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.DownloadListResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Demo Game", resp.GameTitle)
		require.Len(t, resp.Files, 1)
	})
}

func TestRecoveryHandler(t *testing.T) {
	t.Run("links resent", func(t *testing.T) {
		h := NewRecoveryHandler(&stubRecovery{resp: &dto.RecoverResponse{Success: true, Message: "Found 1 purchase(s). Download links have been sent to your email."}}, zerolog.Nop())

		rec := doJSON(t, h.RecoverDownload, http.MethodPost, "/recover-download", `{"email":"foo@bar.com"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		var resp dto.RecoverResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
	})

	t.Run("no purchases returns 404", func(t *testing.T) {
		h := NewRecoveryHandler(&stubRecovery{err: service.ErrNoPurchases}, zerolog.Nop())

		rec := doJSON(t, h.RecoverDownload, http.MethodPost, "/recover-download", `{"email":"foo@bar.com"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("all expired returns 410", func(t *testing.T) {
		h := NewRecoveryHandler(&stubRecovery{err: service.ErrAllExpired}, zerolog.Nop())

		rec := doJSON(t, h.RecoverDownload, http.MethodPost, "/recover-download", `{"email":"foo@bar.com"}`)

		assert.Equal(t, http.StatusGone, rec.Code)
		assert.Equal(t, "LINKS_EXPIRED", decodeError(t, rec).Code)
	})
}

var errStub = assert.AnError
