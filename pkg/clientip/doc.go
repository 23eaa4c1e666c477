// Package clientip extracts the originating client IP from HTTP requests.
//
// Proxy headers are consulted before falling back to the connection's
// remote address, so the package works both behind reverse proxies and for
// direct connections. Every candidate value is parsed and normalized; a
// request for which no valid IP can be determined yields an empty string,
// which callers should treat as "identity unknown".
package clientip
