package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
)

// cookieJar carries session cookies across requests in a test flow.
type cookieJar map[string]*http.Cookie

func (j cookieJar) update(w *httptest.ResponseRecorder) {
	for _, ck := range w.Result().Cookies() {
		j[ck.Name] = ck
	}
}

func performRequest(r http.Handler, method, path string, form url.Values, jar cookieJar) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range jar {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if jar != nil {
		jar.update(w)
	}
	return w
}
