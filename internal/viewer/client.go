package viewer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/GregMSThompson/account-viewer/internal/dto"
	"github.com/GregMSThompson/account-viewer/internal/models"
	"github.com/GregMSThompson/account-viewer/pkg/logger"
)

// ProxyClient talks to the account proxy. It never carries bank credentials.
type ProxyClient struct {
	client  *http.Client
	baseURL string
}

func NewProxyClient(baseURL string, timeout time.Duration) *ProxyClient {
	return &ProxyClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (c *ProxyClient) accountPath(accountID string) string {
	return c.baseURL + "/api/account/" + url.PathEscape(accountID)
}

func (c *ProxyClient) FetchAccount(ctx context.Context, accountID string) (*models.Account, error) {
	var account models.Account
	if err := c.get(ctx, c.accountPath(accountID), &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (c *ProxyClient) FetchTransactions(ctx context.Context, accountID string) ([]models.Transaction, error) {
	var list dto.TransactionList
	if err := c.get(ctx, c.accountPath(accountID)+"/transaction", &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *ProxyClient) get(ctx context.Context, target string, out any) error {
	log := logger.FromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if logger.IsDebugEnabled(ctx) {
		log.Debug("proxy response", "url", target, "status", resp.StatusCode, "bytes", len(body))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, errorText(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// errorText prefers the proxy's {"error": "..."} message over the raw body.
func errorText(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(body))
}
