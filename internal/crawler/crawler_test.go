package crawler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aleister1102/jsmonster/internal/httpclient"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const indexPage = `<!doctype html>
<html><head>
<script src="/static/app.js"></script>
<script src="https://cdn.example.net/vendor.mjs?v=3"></script>
<script src="/styles/site.css"></script>
<link rel="preload" as="script" href="/chunks/runtime">
<link rel="preload" as="style" href="/main.css">
</head><body>
<div data-main="/js/boot"></div>
<div data-src="/img/logo.png"></div>
<script>
  import { a } from "./modules/a.mjs";
  const b = require("./lib/b");
  loadScript("/lazy/c.js?x=1");
  var tpl = "${base}/{id}";
  var img = "data:text/javascript,alert(1).js";
</script>
<a href="/about">about</a>
</body></html>`

const aboutPage = `<html><body><script src="/about.js"></script><a href="/deeper">deeper</a></body></html>`

const deeperPage = `<html><body><script src="/deeper.js"></script></body></html>`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, indexPage)
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, aboutPage)
	})
	mux.HandleFunc("/deeper", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, deeperPage)
	})
	mux.HandleFunc("/empty", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><body><p>no scripts here</p></body></html>`)
	})
	mux.HandleFunc("/moved", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusFound)
	})
	mux.HandleFunc("/old/page", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new/index.html", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new/index.html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><script src="bundle.js"></script></html>`)
	})
	mux.HandleFunc("/ua", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<script src="/%s.js"></script>`, r.Header.Get("X-Probe"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestCrawler(t *testing.T, cfg Config) *Crawler {
	t.Helper()
	client, err := httpclient.NewHTTPClientBuilder(zerolog.Nop()).
		WithHeaders(map[string]string{"X-Probe": "probe"}).
		Build()
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return NewCrawler(client, cfg, zerolog.Nop())
}

func TestCrawler_Crawl_SinglePage(t *testing.T) {
	srv := newTestServer(t)
	cr := newTestCrawler(t, Config{Timeout: 5 * time.Second, FollowRedirects: true, MaxDepth: 1})

	got := cr.Crawl(context.Background(), srv.URL+"/")

	assert.Equal(t, []string{
		srv.URL + "/static/app.js",
		"https://cdn.example.net/vendor.mjs?v=3",
		srv.URL + "/lazy/c.js?x=1",
		srv.URL + "/modules/a.mjs",
		srv.URL + "/lib/b",
		srv.URL + "/js/boot",
		srv.URL + "/chunks/runtime",
	}, got)
}

func TestCrawler_Crawl_NoScripts(t *testing.T) {
	srv := newTestServer(t)
	cr := newTestCrawler(t, Config{Timeout: 5 * time.Second, FollowRedirects: true})

	assert.Empty(t, cr.Crawl(context.Background(), srv.URL+"/empty"))
}

func TestCrawler_Crawl_NonOKAndUnreachable(t *testing.T) {
	srv := newTestServer(t)
	cr := newTestCrawler(t, Config{Timeout: 5 * time.Second, FollowRedirects: true})

	assert.Empty(t, cr.Crawl(context.Background(), srv.URL+"/missing"))
	assert.Empty(t, cr.Crawl(context.Background(), "http://127.0.0.1:1/"))
}

func TestCrawler_Crawl_Redirects(t *testing.T) {
	srv := newTestServer(t)

	follow := newTestCrawler(t, Config{Timeout: 5 * time.Second, FollowRedirects: true})
	assert.Contains(t, follow.Crawl(context.Background(), srv.URL+"/moved"), srv.URL+"/static/app.js")

	noFollow := newTestCrawler(t, Config{Timeout: 5 * time.Second, FollowRedirects: false})
	assert.Empty(t, noFollow.Crawl(context.Background(), srv.URL+"/moved"))
}

func TestCrawler_Crawl_RelativeToFinalURL(t *testing.T) {
	srv := newTestServer(t)
	cr := newTestCrawler(t, Config{Timeout: 5 * time.Second, FollowRedirects: true})

	got := cr.Crawl(context.Background(), srv.URL+"/old/page")
	assert.Equal(t, []string{srv.URL + "/new/bundle.js"}, got)
}

func TestCrawler_Crawl_Depth(t *testing.T) {
	srv := newTestServer(t)

	cr := newTestCrawler(t, Config{Timeout: 5 * time.Second, FollowRedirects: true, MaxDepth: 2})
	got := cr.Crawl(context.Background(), srv.URL+"/")
	assert.Contains(t, got, srv.URL+"/about.js")
	assert.NotContains(t, got, srv.URL+"/deeper.js")

	cr = newTestCrawler(t, Config{Timeout: 5 * time.Second, FollowRedirects: true, MaxDepth: 3})
	assert.Contains(t, cr.Crawl(context.Background(), srv.URL+"/"), srv.URL+"/deeper.js")
}

func TestCrawler_Crawl_SendsConfiguredHeaders(t *testing.T) {
	srv := newTestServer(t)
	cr := newTestCrawler(t, Config{Timeout: 5 * time.Second, FollowRedirects: true})

	assert.Equal(t, []string{srv.URL + "/probe.js"}, cr.Crawl(context.Background(), srv.URL+"/ua"))
}

func TestCrawler_Crawl_CancelledContext(t *testing.T) {
	srv := newTestServer(t)
	cr := newTestCrawler(t, Config{Timeout: 5 * time.Second, FollowRedirects: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Empty(t, cr.Crawl(ctx, srv.URL+"/"))
}
