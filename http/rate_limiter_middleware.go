package http

import (
	"math"
	"net"
	"net/http"
	"strconv"
)

func clientKey(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// RateLimitMiddleware charges every request cost units against its client's
// budget and answers 429 with Retry-After once the budget runs out.
func RateLimitMiddleware(
	limiter *RateLimiter,
	cost func(*http.Request) int,
	next http.Handler,
) http.Handler {

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		ok, wait := limiter.Take(clientKey(r), cost(r))
		if !ok {
			seconds := int(math.Ceil(wait.Seconds()))
			w.Header().Set("Retry-After", strconv.Itoa(max(seconds, 1)))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func flatCost(n int) func(*http.Request) int {
	return func(*http.Request) int { return n }
}

// reportCost prices a report request by its output format.
func reportCost(r *http.Request) int {
	if r.URL.Query().Get("format") == "pdf" {
		return CostPDF
	}
	return CostReport
}
