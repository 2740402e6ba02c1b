package treasuryclient

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/account-viewer/internal/errs"
)

type recordedRequest struct {
	path   string
	auth   string
	method string
	ctype  string
}

func newUpstream(t *testing.T, status int, body string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var got []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, recordedRequest{
			path:   r.URL.EscapedPath(),
			auth:   r.Header.Get("Authorization"),
			method: r.Method,
			ctype:  r.Header.Get("Content-Type"),
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestAdapterForwardsPathsWithBasicAuth(t *testing.T) {
	srv, got := newUpstream(t, http.StatusOK, `{"id":"acct_1"}`)
	a, err := NewAdapter(srv.URL+"/", Credentials{Username: "key-id", Password: "s3cr3t:x"})
	require.NoError(t, err)

	ids := []string{"acct_11m856tf1d13wn5", "acct_1", "a-b_c"}
	for _, id := range ids {
		_, _, err := a.GetAccount(context.Background(), id)
		require.NoError(t, err)
		_, _, err = a.ListTransactions(context.Background(), id)
		require.NoError(t, err)
	}

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("key-id:s3cr3t:x"))
	require.Len(t, *got, 2*len(ids))
	for i, id := range ids {
		acct := (*got)[2*i]
		txs := (*got)[2*i+1]
		assert.Equal(t, "/account/"+id, acct.path)
		assert.Equal(t, "/account/"+id+"/transaction", txs.path)
		for _, r := range []recordedRequest{acct, txs} {
			assert.Equal(t, http.MethodGet, r.method)
			assert.Equal(t, wantAuth, r.auth)
			assert.Equal(t, "application/json", r.ctype)
		}
	}
}

func TestAdapterURLs(t *testing.T) {
	a, err := NewAdapter("https://api.sandbox.treasuryprime.com", Credentials{})
	require.NoError(t, err)

	assert.Equal(t, "https://api.sandbox.treasuryprime.com/account/acct_9", a.AccountURL("acct_9"))
	assert.Equal(t, "https://api.sandbox.treasuryprime.com/account/acct_9/transaction", a.TransactionsURL("acct_9"))
	assert.Equal(t, "https://api.sandbox.treasuryprime.com/account/a%2Fb", a.AccountURL("a/b"))
}

func TestAdapterReturnsBodyVerbatim(t *testing.T) {
	body := `{"data":[{"id":"ttx_1","amount":"10.00"}],  "page_next":null}`
	srv, _ := newUpstream(t, http.StatusOK, body)
	a, err := NewAdapter(srv.URL, Credentials{Username: "u", Password: "p"})
	require.NoError(t, err)

	got, status, err := a.ListTransactions(context.Background(), "acct_1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, body, string(got))
}

func TestAdapterNon2xxIsExternalServiceError(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusNotFound, http.StatusBadGateway} {
		srv, _ := newUpstream(t, status, `{"error":"nope"}`)
		a, err := NewAdapter(srv.URL, Credentials{Username: "u", Password: "p"})
		require.NoError(t, err)

		_, gotStatus, err := a.GetAccount(context.Background(), "acct_1")
		require.Error(t, err)
		assert.Equal(t, status, gotStatus)

		var ext *errs.ExternalServiceError
		require.True(t, errors.As(err, &ext))
		assert.Equal(t, status, ext.Status)
		assert.Contains(t, ext.Error(), `{"error":"nope"}`)
	}
}

func TestAdapterInvalidJSON(t *testing.T) {
	for _, body := range []string{`<html>maintenance</html>`, ``, `{"id":"acct_1"`} {
		srv, _ := newUpstream(t, http.StatusOK, body)
		a, err := NewAdapter(srv.URL, Credentials{Username: "u", Password: "p"})
		require.NoError(t, err)

		got, _, err := a.GetAccount(context.Background(), "acct_1")
		assert.Nil(t, got, body)
		var ext *errs.ExternalServiceError
		require.True(t, errors.As(err, &ext), body)
		assert.False(t, ext.Transient)
		assert.Contains(t, ext.Error(), "invalid JSON")
		require.NotNil(t, ext.Err, "decode error is kept for unwrapping")
		assert.Contains(t, ext.Error(), ext.Err.Error())
	}
}

func TestAdapterTransportFailure(t *testing.T) {
	srv, _ := newUpstream(t, http.StatusOK, `{}`)
	srv.Close()

	a, err := NewAdapter(srv.URL, Credentials{Username: "u", Password: "p"})
	require.NoError(t, err)

	_, _, err = a.ListTransactions(context.Background(), "acct_1")
	var ext *errs.ExternalServiceError
	require.True(t, errors.As(err, &ext))
	assert.True(t, ext.Transient)
	assert.NotEmpty(t, ext.Error())
}

func TestNewAdapterRejectsRelativeURL(t *testing.T) {
	_, err := NewAdapter("/account", Credentials{})
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", maxErrorBody+10)
	assert.Len(t, truncate([]byte(long)), maxErrorBody+3)
	assert.Equal(t, "short", truncate([]byte("  short\n")))
}
