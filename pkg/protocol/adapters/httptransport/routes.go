package httptransport

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/reefbase/reef-go/pkg/protocol"
)

//go:embed routes.json
var defaultRoutesJSON []byte

// Route binds one controller/action pair to a URL template and HTTP verb.
// Templates may contain the placeholder tokens ":index" and ":collection".
type Route struct {
	URL  string `json:"url"`
	Verb string `json:"verb"`
}

// Routes is the full routing table, keyed by controller then action. It is
// populated once at transport construction and read-only afterwards, so
// concurrent Send calls share it freely.
type Routes map[string]map[string]Route

var allowedVerbs = map[string]struct{}{
	http.MethodGet:    {},
	http.MethodPost:   {},
	http.MethodPut:    {},
	http.MethodDelete: {},
	http.MethodPatch:  {},
	http.MethodHead:   {},
}

// DefaultRoutes returns the routing table compiled into the SDK.
func DefaultRoutes() (Routes, error) {
	return parseRoutes(defaultRoutesJSON)
}

// LoadRoutes reads a routing table from a JSON file. A missing file or a
// file that does not decode into the routing schema is an error; callers
// treat it as fatal at construction time.
func LoadRoutes(path string) (Routes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read routes file %s: %w", path, err)
	}
	routes, err := parseRoutes(data)
	if err != nil {
		return nil, fmt.Errorf("routes file %s: %w", path, err)
	}
	return routes, nil
}

func parseRoutes(data []byte) (Routes, error) {
	var routes Routes
	if err := json.Unmarshal(data, &routes); err != nil {
		return nil, fmt.Errorf("failed to decode routes: %w", err)
	}
	if err := routes.Validate(); err != nil {
		return nil, err
	}
	return routes, nil
}

// Validate walks the whole table and reports every bad entry at once, so a
// corrupted routing file surfaces at startup instead of at arbitrary call
// time.
func (r Routes) Validate() error {
	var result *multierror.Error
	for controller, actions := range r {
		for action, route := range actions {
			if route.URL == "" || !strings.HasPrefix(route.URL, "/") {
				result = multierror.Append(result, fmt.Errorf(
					"%s/%s: url %q must start with a slash", controller, action, route.URL))
			}
			if _, ok := allowedVerbs[route.Verb]; !ok {
				result = multierror.Append(result, fmt.Errorf(
					"%s/%s: %w: %q", controller, action, protocol.ErrInvalidVerb, route.Verb))
			}
		}
	}
	return result.ErrorOrNil()
}

// Resolve translates a request's controller/action into a concrete path and
// verb. Placeholder tokens are substituted with the request's index and
// collection, or the empty string when absent; no escaping is performed
// beyond that, so identifiers must be URL-safe. Resolution is pure: the
// same request against an unchanged table always yields the same result.
func (r Routes) Resolve(req *protocol.Request) (path, verb string, err error) {
	actions, ok := r[req.Controller()]
	if !ok {
		return "", "", &protocol.Error{
			Op:  "http.Resolve",
			Err: protocol.ErrRouteNotFound,
			Msg: req.Controller() + "/" + req.Action(),
		}
	}
	route, ok := actions[req.Action()]
	if !ok {
		return "", "", &protocol.Error{
			Op:  "http.Resolve",
			Err: protocol.ErrRouteNotFound,
			Msg: req.Controller() + "/" + req.Action(),
		}
	}
	if _, ok := allowedVerbs[route.Verb]; !ok {
		return "", "", &protocol.Error{
			Op:  "http.Resolve",
			Err: protocol.ErrInvalidVerb,
			Msg: route.Verb,
		}
	}

	path = strings.ReplaceAll(route.URL, ":index", req.Index())
	path = strings.ReplaceAll(path, ":collection", req.Collection())
	return path, route.Verb, nil
}
