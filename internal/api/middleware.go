package api

import (
	"fmt"
	"net/http"

	"github.com/huangsam/presetter/internal/contract"
)

const internalErrorMsg = "Internal server error"

// withCORS allows any origin and answers preflight requests directly.
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withRecover turns a panic into a generic 500 and logs the detail.
func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				contract.LogWarn(fmt.Sprintf("Panic serving %s %s", r.Method, r.URL.Path), fmt.Errorf("%v", rec))
				writeError(w, http.StatusInternalServerError, internalErrorMsg)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
