// Package server exposes the level catalog and play over HTTP.
//
//	GET  /levels              list levels
//	GET  /levels/{id}         describe one level
//	POST /levels/{id}/play    play the request body as a script
//
// The play endpoint accepts an optional "seed" query argument fixing the
// dragon's placement, and "strict" to reject excluded statements.
package server
