package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/matst80/slask-market/pkg/types"
	"golang.org/x/oauth2/clientcredentials"
)

// HttpProvider fetches a JSON array of products from a remote endpoint.
type HttpProvider struct {
	Url     string
	Client  *http.Client
	Timeout time.Duration
}

func NewHttpProvider(url string, client *http.Client) *HttpProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &HttpProvider{Url: url, Client: client, Timeout: 30 * time.Second}
}

// NewOAuthClient returns a client that authenticates with the client
// credentials grant.
func NewOAuthClient(ctx context.Context, clientId, clientSecret, tokenUrl string, scopes ...string) *http.Client {
	cfg := &clientcredentials.Config{
		ClientID:     clientId,
		ClientSecret: clientSecret,
		TokenURL:     tokenUrl,
		Scopes:       scopes,
	}
	return cfg.Client(ctx)
}

func (p *HttpProvider) Load(ctx context.Context) ([]types.Product, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.Url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	res, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, fmt.Errorf("catalog request to %s failed with status %d", p.Url, res.StatusCode)
	}
	products := make([]types.Product, 0)
	if err = sonic.ConfigDefault.NewDecoder(res.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}
	return products, nil
}
