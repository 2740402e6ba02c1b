package viewer

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GregMSThompson/account-viewer/pkg/logger"
)

func newTestRouter(t *testing.T, f *fakeFetcher) http.Handler {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	log := slog.New(logger.NewTestHandler(slog.LevelInfo))
	return NewRouter(log, NewLoader(f, "acct_1"), r)
}

func TestPageStreamsPlaceholderBeforeContent(t *testing.T) {
	h := newTestRouter(t, &fakeFetcher{account: sampleAccount(), txs: sampleTransactions()})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.True(t, rec.Flushed)

	body := rec.Body.String()
	placeholder := strings.Index(body, `id="loading"`)
	hide := strings.Index(body, "#loading{display:none}")
	content := strings.Index(body, "Hello, Ada Lovelace!")
	require.True(t, placeholder >= 0 && hide >= 0 && content >= 0, body)
	assert.Less(t, placeholder, hide)
	assert.Less(t, hide, content)
	assert.Contains(t, body, "<title>Account acct_1</title>")
	assert.Contains(t, body, "&#43;$1,500.00", "html/template escapes the plus sign")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(body), "</html>"))
}

func TestPageExpandedQuery(t *testing.T) {
	h := newTestRouter(t, &fakeFetcher{account: sampleAccount(), txs: sampleTransactions()})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?expanded=ttx_dep", nil))

	body := rec.Body.String()
	assert.Contains(t, body, "ach_1")
	assert.Contains(t, body, "Fingerprint")
	assert.Contains(t, body, `href="/"`, "the open row links back to the collapsed page")
	assert.Contains(t, body, `href="/?expanded=ttx_wd#tx-ttx_wd"`)
	assert.NotContains(t, body, "1042", "other rows stay collapsed")
}

func TestPageBothFetchesFail(t *testing.T) {
	h := newTestRouter(t, &fakeFetcher{accountErr: errProxy, txsErr: errProxy})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	assert.Equal(t, 2, strings.Count(body, `role="alert"`))
	assert.Contains(t, body, "0 transactions")
	assert.Contains(t, body, "No transactions found")
}

func TestViewerHealth(t *testing.T) {
	h := newTestRouter(t, &fakeFetcher{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestPageRowAnchorsMatchLinks(t *testing.T) {
	txs := sampleTransactions()[:1]
	txs[0].ID = "a b&c"
	h := newTestRouter(t, &fakeFetcher{account: sampleAccount(), txs: txs})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	body := rec.Body.String()
	assert.Contains(t, body, `<li id="tx-a%20b&amp;c">`)
	assert.Contains(t, body, `#tx-a%20b&amp;c"`)
}
