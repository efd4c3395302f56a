package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/segmentio/encoding/json"

	"github.com/vegasq/copcat/record"
)

var (
	// ErrUnexpectedShape is wrapped by every response shape violation.
	ErrUnexpectedShape = errors.New("unexpected response shape")
	// ErrStatus is wrapped when the portal answers with a non-2xx status.
	ErrStatus = errors.New("unexpected HTTP status")
	// ErrDisabled is returned by Fetch on a disabled adapter.
	ErrDisabled = errors.New("source disabled")
)

// Shape describes how the rows are laid out at the end of an adapter's path.
type Shape int

const (
	// List is an array of objects.
	List Shape = iota
	// Mapping is an object whose values are objects.
	Mapping
)

func (s Shape) String() string {
	if s == Mapping {
		return "mapping"
	}
	return "list"
}

// Request is the single HTTP call an adapter makes.
type Request struct {
	Method string
	URL    string
	// Query holds plain query parameters. Empty values are sent as "key=".
	Query url.Values
	// JSONQuery holds query parameters whose values are sent JSON-encoded.
	JSONQuery map[string]interface{}
	Headers   map[string]string
	// Body is JSON-encoded when not nil.
	Body interface{}
}

// Adapter fetches and normalizes one portal's catalog.
type Adapter struct {
	// Name is the source name used for every artifact of this adapter.
	Name string
	// Title is the thematic domain, used in log lines.
	Title string
	// Portal is the human-facing catalogue page.
	Portal string

	Request Request
	// Path is the sequence of object keys leading to the rows.
	Path  []string
	Shape Shape
	// Stringify lists columns whose values are replaced by their textual
	// form when present.
	Stringify []string

	Disabled bool
	Reason   string
}

// Result is the outcome of one Fetch: a record set or the reason there is
// none.
type Result struct {
	Source string
	Set    *record.Set
	Err    error
}

// OK reports whether the fetch produced a record set.
func (r Result) OK() bool {
	return r.Err == nil && r.Set != nil
}

// Fetch performs the adapter's request and normalizes the response. All
// failures are returned in the Result, never panicked or logged.
func (a Adapter) Fetch(ctx context.Context, client *resty.Client) Result {
	result := Result{Source: a.Name}
	if a.Disabled {
		result.Err = fmt.Errorf("%w: %s", ErrDisabled, a.Reason)
		return result
	}

	doc, err := a.do(ctx, client)
	if err != nil {
		result.Err = err
		return result
	}

	set, err := a.Normalize(doc)
	if err != nil {
		result.Err = err
		return result
	}

	for _, col := range a.Stringify {
		set.Stringify(col)
	}
	result.Set = set
	return result
}

func (a Adapter) do(ctx context.Context, client *resty.Client) (interface{}, error) {
	method := a.Request.Method
	if method == "" {
		method = http.MethodGet
	}

	req := client.R().
		SetContext(ctx).
		SetHeaders(a.Request.Headers)

	if len(a.Request.Query) > 0 {
		req.SetQueryParamsFromValues(a.Request.Query)
	}
	for key, value := range a.Request.JSONQuery {
		b, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode query parameter %q: %w", key, err)
		}
		req.SetQueryParam(key, string(b))
	}
	if a.Request.Body != nil {
		b, err := json.Marshal(a.Request.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		req.SetBody(b)
	}

	res, err := req.Execute(method, a.Request.URL)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, a.Request.URL, err)
	}
	if res.StatusCode() < 200 || res.StatusCode() > 299 {
		return nil, fmt.Errorf("%w: %s %s returned %s", ErrStatus, method, a.Request.URL, res.Status())
	}

	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(res.Body()))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return doc, nil
}

// Normalize extracts the rows from a decoded response and builds the record
// set. It does not apply the stringification fix-up.
func (a Adapter) Normalize(doc interface{}) (*record.Set, error) {
	v, err := lookup(doc, a.Path)
	if err != nil {
		return nil, err
	}

	where := pathString(a.Path)
	switch a.Shape {
	case Mapping:
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: %s is %s, want an object", ErrUnexpectedShape, where, kindOf(v))
		}
		set, err := record.FromMapping(m)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnexpectedShape, where, err)
		}
		return set, nil
	default:
		items, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: %s is %s, want an array", ErrUnexpectedShape, where, kindOf(v))
		}
		set, err := record.FromList(items)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrUnexpectedShape, where, err)
		}
		return set, nil
	}
}

// lookup walks path through nested objects.
func lookup(doc interface{}, path []string) (interface{}, error) {
	current := doc
	for i, key := range path {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: %s is %s, want an object", ErrUnexpectedShape, pathString(path[:i]), kindOf(current))
		}
		next, ok := obj[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s is missing", ErrUnexpectedShape, pathString(path[:i+1]))
		}
		current = next
	}
	return current, nil
}

func pathString(path []string) string {
	if len(path) == 0 {
		return "response"
	}
	return strings.Join(path, ".")
}

func kindOf(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]interface{}:
		return "an object"
	case []interface{}:
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	default:
		return "a number"
	}
}
