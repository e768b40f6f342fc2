package protocol

// Request describes one logical API call: a controller/action address,
// optional index and collection scoping, a body payload and query-string
// parameters. Controller and action are fixed at construction; everything
// else is attached through chained setters. A Request is built by a
// controller, handed to a transport exactly once, then discarded.
type Request struct {
	controller string
	action     string
	index      string
	collection string
	body       map[string]any
	query      map[string]any
}

// NewRequest creates a Request addressed to the given controller and action.
func NewRequest(controller, action string) *Request {
	return &Request{
		controller: controller,
		action:     action,
		body:       make(map[string]any),
		query:      make(map[string]any),
	}
}

// Controller returns the target controller name.
func (r *Request) Controller() string { return r.controller }

// Action returns the target action name.
func (r *Request) Action() string { return r.action }

// Index returns the index scope, or "" when the call is not index-scoped.
func (r *Request) Index() string { return r.index }

// Collection returns the collection scope, or "" when unset.
func (r *Request) Collection() string { return r.collection }

// Body returns the body payload mapping.
func (r *Request) Body() map[string]any { return r.body }

// Query returns the query-string parameter mapping.
func (r *Request) Query() map[string]any { return r.query }

// SetIndex scopes the request to an index. Setting an empty index is a
// no-op.
func (r *Request) SetIndex(index string) *Request {
	if index != "" {
		r.index = index
	}
	return r
}

// SetCollection scopes the request to a collection. Setting an empty
// collection is a no-op.
func (r *Request) SetCollection(collection string) *Request {
	if collection != "" {
		r.collection = collection
	}
	return r
}

// AddToBody attaches one key of the JSON body payload.
func (r *Request) AddToBody(key string, value any) *Request {
	r.body[key] = value
	return r
}

// AddToQuery attaches one query-string parameter.
func (r *Request) AddToQuery(key string, value any) *Request {
	r.query[key] = value
	return r
}
