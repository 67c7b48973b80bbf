// Package http implements the REST transport of the item sync server.
//
// Every /api/items route runs behind trace-id propagation, access logging
// and bearer-token authentication; the authenticated owner id is placed in
// the request context and is the only owner the handlers act for. Request
// bodies may be gzip-encoded and responses are compressed when the client
// accepts it.
package http
