package gateway

import (
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Proxy forwards storefront API requests to the identity, catalog and
// order services.  It performs no token inspection: the caller's
// Authorization header travels to the upstream verbatim and the upstream's
// status code and body are relayed back unmodified, success or failure.
// The only responses the gateway produces itself are 502/504 when an
// upstream cannot be reached at all.
type Proxy struct {
	client *http.Client
	log    *zap.Logger
}

// NewProxy builds a proxy with a keep-alive transport sized for many
// concurrent storefront clients.
func NewProxy(log *zap.Logger) *Proxy {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
	}
	return &Proxy{
		client: &http.Client{Transport: transport, Timeout: 30 * time.Second},
		log:    log,
	}
}

// Forward returns a handler that sends the incoming request to
// base+prefix, appending the route's wildcard suffix and query string.
// Registered with echo wildcard routes, e.g.
// e.Any("/api/catalog/*", p.Forward(catalogURL, "/products")).
func (p *Proxy) Forward(base, prefix string) echo.HandlerFunc {
	return func(c echo.Context) error {
		target := base + prefix
		if suffix := c.Param("*"); suffix != "" {
			target += "/" + suffix
		}
		if qs := c.QueryString(); qs != "" {
			target += "?" + qs
		}

		in := c.Request()
		req, err := http.NewRequestWithContext(in.Context(), in.Method, target, in.Body)
		if err != nil {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "upstream request failed"})
		}
		if ct := in.Header.Get(echo.HeaderContentType); ct != "" {
			req.Header.Set(echo.HeaderContentType, ct)
		}
		// The Authorization header is the trust hand-off between the
		// client and the downstream service; it must arrive untouched.
		if auth := in.Header.Get(echo.HeaderAuthorization); auth != "" {
			req.Header.Set(echo.HeaderAuthorization, auth)
		}

		resp, err := p.client.Do(req)
		if err != nil {
			p.log.Warn("upstream request failed", zap.String("target", target), zap.Error(err))
			if isTimeout(err) {
				return c.JSON(http.StatusGatewayTimeout, echo.Map{"error": "upstream timed out"})
			}
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "upstream unavailable"})
		}
		defer resp.Body.Close()
		return c.Stream(resp.StatusCode, resp.Header.Get(echo.HeaderContentType), resp.Body)
	}
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
