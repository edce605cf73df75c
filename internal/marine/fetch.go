package marine

import (
	"context"
	"encoding/json"

	"github.com/surfhub/swellcast/backend-go/internal/models"
	"github.com/surfhub/swellcast/backend-go/pkg/http/client"
)

// getJSON issues a GET and decodes a 2xx body into out. Every failure comes
// back as a *ProviderError.
func getJSON(ctx context.Context, c client.Interface, source models.DataSource, path string, out any) error {
	resp, err := c.Get(ctx, path)
	if err != nil {
		return NewProviderError(source, "request failed", err)
	}
	if !resp.OK() {
		return newStatusError(source, resp.StatusCode)
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return NewProviderError(source, "malformed payload", err)
	}
	return nil
}
