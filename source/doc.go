// Package source fetches catalog metadata from the Copernicus portals.
//
// Each portal is described by an Adapter: one HTTP request with fixed
// method, URL, headers and payload, the path to the rows inside the JSON
// response, how those rows are shaped, and which columns need the
// stringification fix-up. Fetch performs the request and returns a Result
// that either carries the record set or the reason it could not be built.
//
// # Shapes
//
//   - List: the path leads to an array of objects, one row per element.
//   - Mapping: the path leads to an object whose values are objects, one
//     row per key.
//
// Anything else (missing key, wrong type, invalid JSON, non-2xx status) is
// reported through Result.Err; shape problems wrap ErrUnexpectedShape and
// status problems wrap ErrStatus.
//
// # Catalog
//
// Catalog returns the adapters in run order. The Security domain is listed
// with Disabled set since it has no public catalogue endpoint.
package source
