package helius

// TransactionEvent is one enhanced transaction from a Helius webhook push.
// Webhook calls carry a single-element array of these.
type TransactionEvent struct {
	Type           string          `json:"type" validate:"required"`
	Signature      string          `json:"signature" validate:"required"`
	Source         string          `json:"source"`
	Description    string          `json:"description"`
	Instructions   []Instruction   `json:"instructions"`
	TokenTransfers []TokenTransfer `json:"tokenTransfers"`
	Events         EventExtras     `json:"events"`
}

// Instruction references the accounts touched by one instruction
type Instruction struct {
	Accounts []string `json:"accounts"`
}

// TokenTransfer describes a token movement within a transaction
type TokenTransfer struct {
	Mint            string `json:"mint"`
	FromUserAccount string `json:"fromUserAccount"`
	ToUserAccount   string `json:"toUserAccount"`
	TokenStandard   string `json:"tokenStandard"`
}

// EventExtras holds optional typed sub-events
type EventExtras struct {
	Compressed []CompressedEvent `json:"compressed"`
}

// CompressedEvent is a compressed-NFT sub-event
type CompressedEvent struct {
	AssetID string `json:"assetId"`
}

// Webhook is a Helius webhook subscription
type Webhook struct {
	WebhookID        string   `json:"webhookID"`
	WebhookURL       string   `json:"webhookURL"`
	AccountAddresses []string `json:"accountAddresses"`
}

// tokenMetadata is one entry of the token-metadata response
type tokenMetadata struct {
	OffChainMetadata struct {
		Metadata *struct {
			Image string `json:"image"`
		} `json:"metadata"`
	} `json:"offChainMetadata"`
}

// asset is the result shape of the DAS getAsset method
type asset struct {
	Content struct {
		JSONURI string `json:"json_uri"`
	} `json:"content"`
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	Result asset `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
