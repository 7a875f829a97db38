// Package apiconnect wires the fairly.v1 services to Connect.
//
// Every handler and client is built with api.JSONCodec, so requests are
// plain JSON over the Connect protocol:
//
//	curl -X POST localhost:8080/fairly.v1.GroupService/GetGroupBalances \
//	  -H 'Content-Type: application/json' -H 'Authorization: Bearer ...' \
//	  -d '{"groupId": "..."}'
package apiconnect

import (
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/fairly/pkg/api"
)

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
}

func trimBaseURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/")
}

// route dispatches on the exact procedure path.
func route(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}
