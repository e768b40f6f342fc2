package reef

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/reefbase/reef-go/pkg/protocol"
)

// DocumentController writes documents into a collection.
type DocumentController struct {
	client *Client
}

// DocumentResult is the typed view of a document write reply.
type DocumentResult struct {
	ID      string         `mapstructure:"_id"`
	Version int            `mapstructure:"_version"`
	Source  map[string]any `mapstructure:"_source"`
}

// Create stores a new document in the given index and collection.
func (dc *DocumentController) Create(ctx context.Context, index, collection string, content map[string]any) (*DocumentResult, error) {
	if err := validation.Validate(index, validation.Required); err != nil {
		return nil, invalidArgument("document.Create", fmt.Errorf("index: %w", err))
	}
	if err := validation.Validate(collection, validation.Required); err != nil {
		return nil, invalidArgument("document.Create", fmt.Errorf("collection: %w", err))
	}
	if err := validation.Validate(content, validation.Required); err != nil {
		return nil, invalidArgument("document.Create", fmt.Errorf("content: %w", err))
	}

	req := protocol.NewRequest("document", "create").
		SetIndex(index).
		SetCollection(collection)
	for key, value := range content {
		req.AddToBody(key, value)
	}

	res, err := dc.client.Query(ctx, req, protocol.NewQueryOptions())
	if err != nil {
		return nil, err
	}
	if res.Error != nil {
		return nil, res.Error
	}

	var out DocumentResult
	if err := decodeResult("document.Create", res.Result, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
