package reef

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/reefbase/reef-go/pkg/protocol"
)

// IndexController drives the index controller family: creating, deleting
// and inspecting data indexes.
type IndexController struct {
	client *Client
}

// Create creates a new data index.
func (ic *IndexController) Create(ctx context.Context, index string) error {
	if err := validation.Validate(index, validation.Required); err != nil {
		return invalidArgument("index.Create", fmt.Errorf("index: %w", err))
	}

	req := protocol.NewRequest("index", "create").SetIndex(index)
	res, err := ic.client.Query(ctx, req, protocol.NewQueryOptions())
	if err != nil {
		return err
	}
	if res.Error != nil {
		return res.Error
	}
	return nil
}

// Delete deletes an entire data index.
func (ic *IndexController) Delete(ctx context.Context, index string) error {
	if err := validation.Validate(index, validation.Required); err != nil {
		return invalidArgument("index.Delete", fmt.Errorf("index: %w", err))
	}

	req := protocol.NewRequest("index", "delete").SetIndex(index)
	res, err := ic.client.Query(ctx, req, protocol.NewQueryOptions())
	if err != nil {
		return err
	}
	if res.Error != nil {
		return res.Error
	}
	return nil
}

// Exists checks whether the given index exists.
func (ic *IndexController) Exists(ctx context.Context, index string) (bool, error) {
	if err := validation.Validate(index, validation.Required); err != nil {
		return false, invalidArgument("index.Exists", fmt.Errorf("index: %w", err))
	}

	req := protocol.NewRequest("index", "exists").SetIndex(index)
	res, err := ic.client.Query(ctx, req, protocol.NewQueryOptions())
	if err != nil {
		return false, err
	}
	if res.Error != nil {
		return false, res.Error
	}

	exists, ok := res.Result.(bool)
	if !ok {
		return false, &protocol.Error{
			Op:  "index.Exists",
			Err: protocol.ErrUnexpectedResult,
			Msg: "expected a boolean result",
		}
	}
	return exists, nil
}

// GetAutoRefresh returns the index's autorefresh flag. When set, every
// write triggers an immediate refresh of the underlying search engine, at a
// performance cost.
func (ic *IndexController) GetAutoRefresh(ctx context.Context, index string) (bool, error) {
	if err := validation.Validate(index, validation.Required); err != nil {
		return false, invalidArgument("index.GetAutoRefresh", fmt.Errorf("index: %w", err))
	}

	req := protocol.NewRequest("index", "getAutoRefresh").SetIndex(index)
	res, err := ic.client.Query(ctx, req, protocol.NewQueryOptions())
	if err != nil {
		return false, err
	}
	if res.Error != nil {
		return false, res.Error
	}

	auto, ok := res.Result.(bool)
	if !ok {
		return false, &protocol.Error{
			Op:  "index.GetAutoRefresh",
			Err: protocol.ErrUnexpectedResult,
			Msg: "expected a boolean result",
		}
	}
	return auto, nil
}

// List returns every data index known to the server, in server order.
func (ic *IndexController) List(ctx context.Context) ([]string, error) {
	req := protocol.NewRequest("index", "list")
	res, err := ic.client.Query(ctx, req, protocol.NewQueryOptions())
	if err != nil {
		return nil, err
	}
	if res.Error != nil {
		return nil, res.Error
	}

	var out struct {
		Indexes []string `mapstructure:"indexes"`
	}
	if err := decodeResult("index.List", res.Result, &out); err != nil {
		return nil, err
	}
	return out.Indexes, nil
}

// MDelete deletes several indexes at once and returns the ones actually
// deleted.
func (ic *IndexController) MDelete(ctx context.Context, indexes []string) ([]string, error) {
	if err := validation.Validate(indexes, validation.Required); err != nil {
		return nil, invalidArgument("index.MDelete", fmt.Errorf("indexes: %w", err))
	}

	req := protocol.NewRequest("index", "mDelete").AddToBody("indexes", indexes)
	res, err := ic.client.Query(ctx, req, protocol.NewQueryOptions())
	if err != nil {
		return nil, err
	}
	if res.Error != nil {
		return nil, res.Error
	}

	var out struct {
		Deleted []string `mapstructure:"deleted"`
	}
	if err := decodeResult("index.MDelete", res.Result, &out); err != nil {
		return nil, err
	}
	return out.Deleted, nil
}

// Refresh forces an immediate reindexation of the given index. Writes need
// to be indexed before they show up in searches; by default that can take
// up to a second.
func (ic *IndexController) Refresh(ctx context.Context, index string) error {
	if err := validation.Validate(index, validation.Required); err != nil {
		return invalidArgument("index.Refresh", fmt.Errorf("index: %w", err))
	}

	req := protocol.NewRequest("index", "refresh").SetIndex(index)
	res, err := ic.client.Query(ctx, req, protocol.NewQueryOptions())
	if err != nil {
		return err
	}
	if res.Error != nil {
		return res.Error
	}
	return nil
}

// RefreshInternal forces an immediate reindexation of the server's internal
// storage (users, profiles, roles).
func (ic *IndexController) RefreshInternal(ctx context.Context) error {
	req := protocol.NewRequest("index", "refreshInternal")
	res, err := ic.client.Query(ctx, req, protocol.NewQueryOptions())
	if err != nil {
		return err
	}
	if res.Error != nil {
		return res.Error
	}
	return nil
}

// SetAutoRefresh changes the index's autorefresh flag. Enable it only for
// slowly-changing indexes whose writes must be searchable immediately.
func (ic *IndexController) SetAutoRefresh(ctx context.Context, index string, autoRefresh bool) error {
	if err := validation.Validate(index, validation.Required); err != nil {
		return invalidArgument("index.SetAutoRefresh", fmt.Errorf("index: %w", err))
	}

	req := protocol.NewRequest("index", "setAutoRefresh").
		SetIndex(index).
		AddToBody("autoRefresh", autoRefresh)
	res, err := ic.client.Query(ctx, req, protocol.NewQueryOptions())
	if err != nil {
		return err
	}
	if res.Error != nil {
		return res.Error
	}
	return nil
}
