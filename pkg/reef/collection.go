package reef

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/reefbase/reef-go/pkg/protocol"
)

// CollectionController manages collections inside an index.
type CollectionController struct {
	client *Client
}

// Create creates a collection in the given index.
func (cc *CollectionController) Create(ctx context.Context, index, collection string) error {
	if err := validation.Validate(index, validation.Required); err != nil {
		return invalidArgument("collection.Create", fmt.Errorf("index: %w", err))
	}
	if err := validation.Validate(collection, validation.Required); err != nil {
		return invalidArgument("collection.Create", fmt.Errorf("collection: %w", err))
	}

	req := protocol.NewRequest("collection", "create").
		SetIndex(index).
		SetCollection(collection)
	res, err := cc.client.Query(ctx, req, protocol.NewQueryOptions())
	if err != nil {
		return err
	}
	if res.Error != nil {
		return res.Error
	}
	return nil
}
