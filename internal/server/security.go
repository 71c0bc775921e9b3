package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/kassalytics/tracker/internal/logger"
)

// Abuse thresholds. The betting API serves a single Discord bot plus the
// occasional operator curl, so anything near these limits is hostile traffic.
const (
	failedAuthAlertThreshold = 5
	rateLimitPerWindow       = 1000
	rateWindow               = 5 * time.Minute
	rateAlertLogInterval     = 100
)

// AuthMiddleware validates the shared API key on every non-public request.
func AuthMiddleware(apiKey string, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get(HeaderAPIKey)

			// Constant time comparison to prevent timing attacks
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := clientIP(r, trustedProxies)
				detector.RecordFailedAuth(ip)

				log := logger.FromContext(r.Context())
				log.Warn(LogMsgAuthFailed,
					"remote_addr", r.RemoteAddr,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isPublicPath(path string) bool {
	for _, prefix := range PublicPaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// RequestSizeLimitMiddleware caps request body size. Bet and track payloads
// are tiny, so the cap mostly guards against junk uploads.
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SuspiciousActivityDetector tracks per-IP auth failures and request volume
// over a sliding five minute window.
type SuspiciousActivityDetector struct {
	mu             sync.Mutex
	authFailsByIP  map[string]int
	requestsByIP   map[string]int
	windowStartsAt time.Time
}

func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		authFailsByIP:  make(map[string]int),
		requestsByIP:   make(map[string]int),
		windowStartsAt: time.Now(),
	}
}

// RecordFailedAuth counts a failed authentication attempt and alerts once
// the per-IP threshold is crossed.
func (s *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollWindowLocked()
	s.authFailsByIP[ip]++

	if s.authFailsByIP[ip] >= failedAuthAlertThreshold {
		slog.Warn(SecurityAlertFailedAuth,
			"ip", ip,
			"count", s.authFailsByIP[ip])
	}
}

// RecordRequest counts a request and reports whether the IP is still within
// its rate budget for the current window.
func (s *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rollWindowLocked()
	s.requestsByIP[ip]++

	if s.requestsByIP[ip] > rateLimitPerWindow {
		// Log every Nth blocked request to keep the noise down
		if s.requestsByIP[ip]%rateAlertLogInterval == 0 {
			slog.Warn(SecurityAlertHighRate,
				"ip", ip,
				"count_in_window", s.requestsByIP[ip])
		}
		return false
	}
	return true
}

// rollWindowLocked discards counters once the window has elapsed.
// Caller must hold the mutex.
func (s *SuspiciousActivityDetector) rollWindowLocked() {
	if time.Since(s.windowStartsAt) > rateWindow {
		s.requestsByIP = make(map[string]int)
		s.authFailsByIP = make(map[string]int)
		s.windowStartsAt = time.Now()
	}
}

// SecurityLoggingMiddleware enforces the per-IP rate limit before the
// request reaches any handler.
func SecurityLoggingMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r, trustedProxies)

			if !detector.RecordRequest(ip) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP resolves the caller's address. X-Forwarded-For is honored only
// when the direct peer is a configured trusted proxy, in which case the
// rightmost entry is used since that is the hop the proxy vouches for.
func clientIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if !isTrustedProxy(remoteIP, trustedProxies) {
		return remoteIP
	}

	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	hops := strings.Split(forwarded, ",")
	return strings.TrimSpace(hops[len(hops)-1])
}

func isTrustedProxy(ip string, trustedProxies []string) bool {
	for _, proxy := range trustedProxies {
		if proxy == ip {
			return true
		}
	}
	return false
}

// SecurityHeadersMiddleware adds standard hardening headers to responses.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderContentType, HeaderValueNoSniff)
			w.Header().Set(HeaderFrameOptions, HeaderValueSameOrigin)
			w.Header().Set(HeaderXSSProtection, HeaderValueXSSBlock)
			w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)

			next.ServeHTTP(w, r)
		})
	}
}
