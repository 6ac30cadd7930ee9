package geoip

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ipinfo/go/v2/ipinfo"
)

// Locator is the geolocation capability: a best-effort city guess based on
// the caller's network address. Failures must not propagate past the
// resolver, which falls back to its default city.
//
// The ipinfo SDK offers no context-aware call path, so implementations are
// not required to honor ctx cancellation; lookups must instead be bounded
// by their HTTP client's timeout.
type Locator interface {
	CurrentCity(ctx context.Context) (string, error)
}

// IPInfoLocator resolves the city of the service's egress address via the
// ipinfo.io API.
type IPInfoLocator struct {
	client *ipinfo.Client
}

// NewIPInfoLocator creates a locator. httpClient bounds the lookup (its
// timeout is the only cancellation mechanism, see Locator); a nil client
// falls back to http.DefaultClient. The token may be empty; ipinfo serves a
// limited number of unauthenticated requests.
func NewIPInfoLocator(httpClient *http.Client, token string) *IPInfoLocator {
	return &IPInfoLocator{
		client: ipinfo.NewClient(httpClient, nil, token),
	}
}

// CurrentCity looks up the city for the caller's own address.
func (l *IPInfoLocator) CurrentCity(_ context.Context) (string, error) {
	info, err := l.client.GetIPInfo(nil)
	if err != nil {
		return "", fmt.Errorf("ip geolocation lookup failed: %w", err)
	}
	if info.City == "" {
		return "", fmt.Errorf("ip geolocation returned no city")
	}
	return info.City, nil
}
