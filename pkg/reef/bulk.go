package reef

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/reefbase/reef-go/pkg/protocol"
)

// BulkController performs low-level bulk writes.
type BulkController struct {
	client *Client
}

// Import writes a batch of documents in one call. bulkData follows the bulk
// format of the underlying search engine: alternating action and document
// lines. The result reports per-item outcomes.
func (bc *BulkController) Import(ctx context.Context, index, collection string, bulkData []map[string]any) (map[string]any, error) {
	if err := validation.Validate(index, validation.Required); err != nil {
		return nil, invalidArgument("bulk.Import", fmt.Errorf("index: %w", err))
	}
	if err := validation.Validate(collection, validation.Required); err != nil {
		return nil, invalidArgument("bulk.Import", fmt.Errorf("collection: %w", err))
	}
	if err := validation.Validate(bulkData, validation.Required); err != nil {
		return nil, invalidArgument("bulk.Import", fmt.Errorf("bulkData: %w", err))
	}

	req := protocol.NewRequest("bulk", "import").
		SetIndex(index).
		SetCollection(collection).
		AddToBody("bulkData", bulkData)
	res, err := bc.client.Query(ctx, req, protocol.NewQueryOptions())
	if err != nil {
		return nil, err
	}
	if res.Error != nil {
		return nil, res.Error
	}

	obj, ok := res.Result.(map[string]any)
	if !ok {
		return nil, &protocol.Error{
			Op:  "bulk.Import",
			Err: protocol.ErrUnexpectedResult,
			Msg: "expected an object result",
		}
	}
	return obj, nil
}
