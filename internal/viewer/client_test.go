package viewer

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/account-viewer/pkg/helpers"
)

func newProxy(t *testing.T, h http.HandlerFunc) *ProxyClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewProxyClient(srv.URL+"/", 5*time.Second)
}

func TestFetchAccount(t *testing.T) {
	var gotPath, gotAuth string
	c := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"acct_1","name":"Ada","current_balance":"10.00"}`))
	})

	acct, err := c.FetchAccount(helpers.TestCtx(), "acct_1")
	require.NoError(t, err)
	assert.Equal(t, "/api/account/acct_1", gotPath)
	assert.Empty(t, gotAuth, "the display client never sends credentials")
	assert.Equal(t, "Ada", acct.Name)
	assert.Equal(t, "10.00", acct.CurrentBalance)
}

func TestFetchAccountErrorUsesProxyMessage(t *testing.T) {
	c := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"treasury prime returned HTTP 404","code":"upstream_error"}`))
	})

	_, err := c.FetchAccount(helpers.TestCtx(), "acct_1")
	require.Error(t, err)
	assert.Equal(t, "HTTP 500: treasury prime returned HTTP 404", err.Error())
}

func TestFetchAccountErrorRawBody(t *testing.T) {
	c := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("bad gateway\n"))
	})

	_, err := c.FetchAccount(helpers.TestCtx(), "acct_1")
	require.Error(t, err)
	assert.Equal(t, "HTTP 502: bad gateway", err.Error())
}

func TestFetchTransactionsEnvelopeAndBareArray(t *testing.T) {
	bodies := map[string]string{
		"envelope": `{"data":[{"id":"ttx_1","type":"deposit","amount":"1.00"}]}`,
		"bare":     `[{"id":"ttx_1","type":"deposit","amount":"1.00"}]`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			var gotPath string
			c := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				_, _ = w.Write([]byte(body))
			})

			txs, err := c.FetchTransactions(helpers.TestCtx(), "acct_1")
			require.NoError(t, err)
			assert.Equal(t, "/api/account/acct_1/transaction", gotPath)
			require.Len(t, txs, 1)
			assert.Equal(t, "ttx_1", txs[0].ID)
		})
	}
}

func TestFetchTransactionsNonOKIsAnError(t *testing.T) {
	c := newProxy(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	})

	txs, err := c.FetchTransactions(helpers.TestCtx(), "acct_1")
	assert.Nil(t, txs)
	require.Error(t, err)
	assert.Equal(t, "HTTP 500: boom", err.Error())
}

func TestFetchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewProxyClient(url, time.Second).FetchAccount(helpers.TestCtx(), "acct_1")
	assert.Error(t, err)
}
