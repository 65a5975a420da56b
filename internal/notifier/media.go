package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/solxray/solana-wallet-xray/internal/helius"
)

// mediaResolver finds a representative image for a transaction, covering
// both regular NFTs and compressed assets. Failures stay visible as
// errors here; the caller decides to degrade to "no image".
type mediaResolver struct {
	metadata MetadataService
}

// resolveImage returns the image URL for the event, or "" when the
// transaction has no resolvable image.
func (r *mediaResolver) resolveImage(ctx context.Context, ev *helius.TransactionEvent) (string, error) {
	if mint := resolveNFTMint(ev); mint != "" {
		image, err := r.metadata.GetNFTMetadata(ctx, mint)
		if err != nil {
			return "", fmt.Errorf("nft metadata for mint %s: %w", mint, err)
		}
		return image, nil
	}

	if len(ev.Events.Compressed) > 0 && ev.Events.Compressed[0].AssetID != "" {
		return r.resolveCompressed(ctx, ev.Events.Compressed[0].AssetID)
	}

	return "", nil
}

// resolveCompressed follows the compressed-asset lookup chain:
// getAsset -> json_uri -> metadata document -> image field.
func (r *mediaResolver) resolveCompressed(ctx context.Context, assetID string) (string, error) {
	jsonURI, err := r.metadata.GetCompressedAsset(ctx, assetID)
	if err != nil {
		return "", fmt.Errorf("compressed asset %s: %w", assetID, err)
	}

	image, err := r.metadata.FetchJSON(ctx, jsonURI)
	if err != nil {
		return "", fmt.Errorf("compressed asset %s metadata: %w", assetID, err)
	}

	return image, nil
}

// resolveNFTMint returns the mint of the first token transfer whose
// standard indicates a non-fungible token. First occurrence wins.
func resolveNFTMint(ev *helius.TransactionEvent) string {
	for _, tt := range ev.TokenTransfers {
		if strings.Contains(tt.TokenStandard, "NonFungible") {
			return tt.Mint
		}
	}
	return ""
}
