package signer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paypost/go-paypost/internal/config"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 1 << 20

// PrivyClient talks to the Privy wallet REST API.
type PrivyClient struct {
	httpClient *http.Client
	baseURL    string
	appID      string
	appSecret  string
	limiter    *rate.Limiter
}

func NewPrivyClient(cfg config.Privy) *PrivyClient {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	return &PrivyClient{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		appID:      cfg.AppID,
		appSecret:  cfg.AppSecret,
		limiter:    rate.NewLimiter(limit, burst),
	}
}

type rawSignRequest struct {
	Params rawSignParams `json:"params"`
}

type rawSignParams struct {
	Hash string `json:"hash"`
}

// RawSign implements Client.
func (c *PrivyClient) RawSign(ctx context.Context, walletID string, hash string) (json.RawMessage, error) {
	path := fmt.Sprintf("/v1/wallets/%s/raw_sign", url.PathEscape(walletID))

	body, status, err := c.do(ctx, http.MethodPost, path, rawSignRequest{Params: rawSignParams{Hash: hash}})
	if err != nil {
		return nil, err
	}

	if status != http.StatusOK {
		return nil, errors.Wrapf(ErrSignerRequest, "raw_sign returned status %d: %s", status, truncate(body))
	}

	return json.RawMessage(body), nil
}

type createWalletRequest struct {
	ChainType string            `json:"chain_type"`
	Owner     createWalletOwner `json:"owner"`
}

type createWalletOwner struct {
	UserID string `json:"user_id"`
}

type createWalletResponse struct {
	ID        string `json:"id"`
	Address   string `json:"address"`
	PublicKey string `json:"public_key"`
	ChainType string `json:"chain_type"`
	CreatedAt int64  `json:"created_at"`
}

// CreateWallet implements Client.
func (c *PrivyClient) CreateWallet(ctx context.Context, owner string, chainType string) (*CreatedWallet, error) {
	body, status, err := c.do(ctx, http.MethodPost, "/v1/wallets", createWalletRequest{
		ChainType: chainType,
		Owner:     createWalletOwner{UserID: owner},
	})
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK, http.StatusCreated:
	case http.StatusConflict:
		return nil, errors.Wrapf(ErrWalletAlreadyExists, "owner %s", owner)
	default:
		return nil, errors.Wrapf(ErrSignerRequest, "create wallet returned status %d: %s", status, truncate(body))
	}

	var resp createWalletResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to decode create wallet response")
	}

	return &CreatedWallet{
		ID:        resp.ID,
		Address:   resp.Address,
		PublicKey: resp.PublicKey,
		ChainType: resp.ChainType,
		CreatedAt: time.UnixMilli(resp.CreatedAt).UTC(),
	}, nil
}

func (c *PrivyClient) do(ctx context.Context, method string, path string, payload any) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, errors.Wrap(err, "rate limiter wait failed")
	}

	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("privy-app-id", c.appID)
	req.SetBasicAuth(c.appID, c.appSecret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, errors.Wrapf(ErrSignerRequest, "%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, 0, errors.Wrap(err, "failed to read response")
	}

	return body, resp.StatusCode, nil
}

func truncate(body []byte) string {
	const maxLen = 256
	if len(body) > maxLen {
		return string(body[:maxLen]) + "..."
	}
	return string(body)
}
