package grpcx

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/md-rashed-zaman/slothold/libs/httpx"
)

type httpHandlerFunc func(context.Context)

func (f httpHandlerFunc) ServeHTTP(_ http.ResponseWriter, r *http.Request) { f(r.Context()) }

func newRecorder() *httptest.ResponseRecorder { return httptest.NewRecorder() }

func newRequest(id string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(httpx.RequestIDHeader, id)
	return r
}
