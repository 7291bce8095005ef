// Package http reads the reference rate from a remote JSON endpoint.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/bnema/fundme-cli/internal/domain"
	"github.com/bnema/fundme-cli/internal/ports"
	"github.com/spf13/viper"
)

const (
	feedURLKey     = "feed.url"
	feedAddressKey = "feed.address"
	apiKeyRefKey   = "feed.api_key_ref"

	DefaultAPIKeyRef = "feeds/http/api_key"

	maxBodyBytes = 1 << 20
	userAgent    = "fm/price"
)

var ErrUnauthorized = errors.New("price feed rejected credentials")

// latestPayload is the body of GET {url}/latest. Answer is a decimal integer
// string so rates with many decimals survive JSON.
type latestPayload struct {
	Answer    string `json:"answer"`
	Decimals  uint8  `json:"decimals"`
	RoundID   uint64 `json:"round_id"`
	UpdatedAt int64  `json:"updated_at"`
}

type Feed struct {
	baseURL   string
	address   domain.Address
	client    *nethttp.Client
	secrets   ports.SecretStore
	apiKeyRef string
}

var _ ports.PriceFeed = (*Feed)(nil)

// NewFeed requires feed.url and feed.address. The API key is optional: when
// the secret store has nothing under feed.api_key_ref no Authorization header
// is sent.
func NewFeed(cfg *viper.Viper, secrets ports.SecretStore, client *nethttp.Client) (*Feed, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if client == nil {
		client = nethttp.DefaultClient
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.GetString(feedURLKey)), "/")
	if baseURL == "" {
		return nil, errors.New("feed.url is required for the http price feed")
	}

	address, err := domain.ParseAddress(cfg.GetString(feedAddressKey))
	if err != nil {
		return nil, fmt.Errorf("feed address: %w", err)
	}

	apiKeyRef := cfg.GetString(apiKeyRefKey)
	if apiKeyRef == "" {
		apiKeyRef = DefaultAPIKeyRef
	}

	return &Feed{
		baseURL:   baseURL,
		address:   address,
		client:    client,
		secrets:   secrets,
		apiKeyRef: apiKeyRef,
	}, nil
}

func (f *Feed) Address() domain.Address {
	return f.address
}

func (f *Feed) LatestPrice(ctx context.Context) (domain.Price, error) {
	request, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, f.baseURL+"/latest", nil)
	if err != nil {
		return domain.Price{}, fmt.Errorf("create request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", userAgent)

	apiKey, err := f.apiKey(ctx)
	if err != nil {
		return domain.Price{}, err
	}
	if apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+apiKey)
	}

	response, err := f.client.Do(request)
	if err != nil {
		return domain.Price{}, fmt.Errorf("perform request: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxBodyBytes))
	if err != nil {
		return domain.Price{}, fmt.Errorf("read response: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		if response.StatusCode == nethttp.StatusUnauthorized || response.StatusCode == nethttp.StatusForbidden {
			return domain.Price{}, fmt.Errorf("%w: status %d", ErrUnauthorized, response.StatusCode)
		}
		return domain.Price{}, fmt.Errorf("status %d: %s", response.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload latestPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.Price{}, fmt.Errorf("decode payload: %w", err)
	}

	return payload.price()
}

func (f *Feed) apiKey(ctx context.Context) (string, error) {
	if f.secrets == nil {
		return "", nil
	}

	apiKey, err := f.secrets.Get(ctx, f.apiKeyRef)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("load feed api key: %w", err)
	}
	return apiKey, nil
}

func (p latestPayload) price() (domain.Price, error) {
	answer, ok := new(big.Int).SetString(strings.TrimSpace(p.Answer), 10)
	if !ok {
		return domain.Price{}, fmt.Errorf("%w: answer %q is not an integer", domain.ErrInvalidPrice, p.Answer)
	}

	price := domain.Price{
		Answer:   answer,
		Decimals: p.Decimals,
		RoundID:  p.RoundID,
	}
	if p.UpdatedAt > 0 {
		price.UpdatedAt = time.Unix(p.UpdatedAt, 0).UTC()
	}
	if err := price.Validate(); err != nil {
		return domain.Price{}, err
	}

	return price, nil
}
