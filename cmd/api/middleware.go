package main

import (
	"expvar"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/felixge/httpsnoop"
	"golang.org/x/time/rate"
)

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// ratelimited applies a per-client token bucket keyed by IP address.
func (app *application) ratelimited(next http.Handler) http.Handler {

	type client struct {
		limiter  *rate.Limiter
		lastseen time.Time
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)

	// evict clients not seen for a while so the map stays bounded
	go func() {
		for {
			time.Sleep(time.Minute)

			mu.Lock()
			for ip, client := range clients {
				if time.Since(client.lastseen) > 3*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		if app.config.Limiter.Enabled {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				app.serverErrorResponse(w, r, err)
				return
			}

			mu.Lock()

			if _, found := clients[ip]; !found {
				clients[ip] = &client{
					limiter: rate.NewLimiter(rate.Limit(app.config.Limiter.RPS), app.config.Limiter.Burst),
				}
			}

			clients[ip].lastseen = time.Now()

			if !clients[ip].limiter.Allow() {
				mu.Unlock()
				app.rateLimitExceededResponse(w, r)
				return
			}

			mu.Unlock()
		}

		next.ServeHTTP(w, r)
	})
}

// authenticate resolves the caller's identity before routing. A request
// without an Authorization header proceeds anonymously; routes that need an
// identity layer requireAuthenticatedUser on top. A header that is present
// must be a well-formed, verifiable bearer token or the request is rejected
// here, even on otherwise public routes.
func (app *application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		authorizationHeader := r.Header.Get("Authorization")

		if authorizationHeader == "" {
			r = app.contextSetIdentity(r, anonymousIdentity)
			next.ServeHTTP(w, r)
			return
		}

		headerParts := strings.Split(authorizationHeader, " ")
		if len(headerParts) != 2 || headerParts[0] != "Bearer" {
			app.missingAuthHeaderResponse(w, r)
			return
		}

		claims, err := app.tokens.Verify(headerParts[1])
		if err != nil {
			// expired and malformed tokens get the same message at
			// the gateway; only refresh/logout distinguish them
			app.invalidAuthenticationTokenResponse(w, r)
			return
		}

		r = app.contextSetIdentity(r, claims.Email)
		next.ServeHTTP(w, r)
	})
}

func (app *application) requireAuthenticatedUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if app.contextGetIdentity(r) == anonymousIdentity {
			app.missingAuthHeaderResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	}
}

// publishedInt returns the named expvar counter, registering it on first
// use. expvar panics on double registration, and metrics() runs once per
// router construction.
func publishedInt(name string) *expvar.Int {
	if v, ok := expvar.Get(name).(*expvar.Int); ok {
		return v
	}
	return expvar.NewInt(name)
}

func publishedMap(name string) *expvar.Map {
	if v, ok := expvar.Get(name).(*expvar.Map); ok {
		return v
	}
	return expvar.NewMap(name)
}

func (app *application) metrics(next http.Handler) http.Handler {
	totalRequestReceived := publishedInt("total_request_received")
	totalResponseSent := publishedInt("total_response_sent")
	totalProcessingTimeMicroseconds := publishedInt("total_processing_time_μs")

	totalResponseSentByStatus := publishedMap("total_response_sent_by_status")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		totalRequestReceived.Add(1)

		metrics := httpsnoop.CaptureMetrics(next, w, r)

		totalResponseSent.Add(1)

		duration := time.Since(start).Microseconds()
		totalProcessingTimeMicroseconds.Add(duration)

		totalResponseSentByStatus.Add(strconv.Itoa(metrics.Code), 1)
	})
}
