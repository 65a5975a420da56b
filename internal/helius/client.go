package helius

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client is a Helius HTTP client covering the enhanced-transactions API,
// the DAS RPC endpoint and webhook management.
type Client struct {
	api *resty.Client
	rpc *resty.Client
}

// NewClient creates a new Helius client. apiURL serves the REST API
// (token metadata, transaction history, webhooks), rpcURL the DAS RPC.
func NewClient(apiURL, rpcURL, apiKey string) *Client {
	newBase := func(baseURL string) *resty.Client {
		return resty.New().
			SetBaseURL(baseURL).
			SetQueryParam("api-key", apiKey).
			SetHeader("Accept", "application/json").
			SetTimeout(30 * time.Second).
			SetRetryCount(2).
			SetRetryWaitTime(1 * time.Second).
			SetRetryMaxWaitTime(5 * time.Second)
	}

	return &Client{
		api: newBase(apiURL),
		rpc: newBase(rpcURL),
	}
}

// GetNFTMetadata resolves the off-chain image URL for a mint. An empty
// string with a nil error means the token simply has no image.
func (c *Client) GetNFTMetadata(ctx context.Context, mint string) (string, error) {
	body := map[string]any{
		"mintAccounts":    []string{mint},
		"includeOffChain": true,
		"disableCache":    false,
	}

	var result []tokenMetadata
	resp, err := c.api.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post("/v0/token-metadata")
	if err != nil {
		return "", fmt.Errorf("token metadata request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("token metadata: API error %d: %s", resp.StatusCode(), resp.String())
	}
	if len(result) == 0 {
		return "", fmt.Errorf("token metadata: empty response for mint %s", mint)
	}

	meta := result[0].OffChainMetadata.Metadata
	if meta == nil {
		return "", nil
	}
	return meta.Image, nil
}

// GetCompressedAsset fetches a compressed asset via DAS getAsset and
// returns its off-chain metadata URI.
func (c *Client) GetCompressedAsset(ctx context.Context, assetID string) (string, error) {
	req := rpcRequest{
		JSONRPC: "2.0",
		ID:      "wallet-xray",
		Method:  "getAsset",
		Params:  []any{assetID},
	}

	var result rpcResponse
	resp, err := c.rpc.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/")
	if err != nil {
		return "", fmt.Errorf("getAsset request: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("getAsset: API error %d: %s", resp.StatusCode(), resp.String())
	}
	if result.Error != nil {
		return "", fmt.Errorf("getAsset: RPC error %d: %s", result.Error.Code, result.Error.Message)
	}
	if result.Result.Content.JSONURI == "" {
		return "", fmt.Errorf("getAsset: no json_uri for asset %s", assetID)
	}

	return result.Result.Content.JSONURI, nil
}

// FetchJSON fetches an arbitrary metadata JSON document and returns its
// image field.
func (c *Client) FetchJSON(ctx context.Context, uri string) (string, error) {
	var doc struct {
		Image string `json:"image"`
	}

	resp, err := resty.New().
		SetTimeout(30*time.Second).
		R().
		SetContext(ctx).
		SetResult(&doc).
		ForceContentType("application/json").
		Get(uri)
	if err != nil {
		return "", fmt.Errorf("fetch metadata json: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetch metadata json: status %d", resp.StatusCode())
	}

	return doc.Image, nil
}

// CountRecentTransactions returns the number of transactions for an
// address over the last 24 hours.
func (c *Client) CountRecentTransactions(ctx context.Context, address string) (int, error) {
	until := time.Now()
	from := until.Add(-24 * time.Hour)

	var txs []map[string]any
	resp, err := c.api.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"from":  fmt.Sprintf("%d", from.Unix()),
			"until": fmt.Sprintf("%d", until.Unix()),
		}).
		SetResult(&txs).
		Get("/v0/addresses/" + address + "/transactions")
	if err != nil {
		return 0, fmt.Errorf("transaction history request: %w", err)
	}
	if resp.IsError() {
		return 0, fmt.Errorf("transaction history: API error %d", resp.StatusCode())
	}

	return len(txs), nil
}

// --- Webhook Management ---

// GetWebhook returns the webhook with the given ID
func (c *Client) GetWebhook(ctx context.Context, webhookID string) (*Webhook, error) {
	var webhooks []Webhook
	resp, err := c.api.R().
		SetContext(ctx).
		SetResult(&webhooks).
		Get("/v0/webhooks")
	if err != nil {
		return nil, fmt.Errorf("list webhooks: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list webhooks: API error %d", resp.StatusCode())
	}

	for i := range webhooks {
		if webhooks[i].WebhookID == webhookID {
			return &webhooks[i], nil
		}
	}

	return nil, fmt.Errorf("webhook %s not found", webhookID)
}

// UpdateWebhookAddresses replaces the webhook's watched address list
func (c *Client) UpdateWebhookAddresses(ctx context.Context, webhookID, webhookURL string, addresses []string) error {
	if addresses == nil {
		addresses = []string{}
	}
	body := map[string]any{
		"accountAddresses": addresses,
		"webhookURL":       webhookURL,
	}

	resp, err := c.api.R().
		SetContext(ctx).
		SetBody(body).
		Put("/v0/webhooks/" + webhookID)
	if err != nil {
		return fmt.Errorf("update webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("update webhook: API error %d: %s", resp.StatusCode(), resp.String())
	}

	return nil
}
