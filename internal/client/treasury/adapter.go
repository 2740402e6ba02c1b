package treasuryclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/GregMSThompson/account-viewer/internal/errs"
)

const serviceName = "treasury prime"

// maxErrorBody bounds how much of a failed upstream body ends up in error messages.
const maxErrorBody = 512

type Credentials struct {
	Username string
	Password string
}

// BasicAuth returns the value of the Authorization header for the pair.
func (c Credentials) BasicAuth() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.Username+":"+c.Password))
}

type Adapter struct {
	client     *http.Client
	baseURL    string
	authHeader string
}

type Option func(*Adapter)

func WithHTTPClient(c *http.Client) Option {
	return func(a *Adapter) { a.client = c }
}

func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) { a.client.Timeout = d }
}

func NewAdapter(baseURL string, creds Credentials, opts ...Option) (*Adapter, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing upstream base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("upstream base url %q must be absolute", baseURL)
	}

	a := &Adapter{
		client:     &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		authHeader: creds.BasicAuth(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// GetAccount forwards to <base>/account/<id> and returns the upstream body untouched.
func (a *Adapter) GetAccount(ctx context.Context, accountID string) ([]byte, int, error) {
	return a.get(ctx, a.AccountURL(accountID))
}

// ListTransactions forwards to <base>/account/<id>/transaction.
func (a *Adapter) ListTransactions(ctx context.Context, accountID string) ([]byte, int, error) {
	return a.get(ctx, a.TransactionsURL(accountID))
}

func (a *Adapter) AccountURL(accountID string) string {
	return a.baseURL + "/account/" + url.PathEscape(accountID)
}

func (a *Adapter) TransactionsURL(accountID string) string {
	return a.AccountURL(accountID) + "/transaction"
}

func (a *Adapter) get(ctx context.Context, target string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", a.authHeader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, 0, errs.NewTransportError(serviceName, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, errs.NewTransportError(serviceName, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, errs.NewUpstreamStatusError(serviceName, resp.StatusCode, truncate(body))
	}

	var doc json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, resp.StatusCode, errs.NewUpstreamParseError(serviceName, err)
	}

	return body, resp.StatusCode, nil
}

func truncate(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}
