// Package server implements the MCP (Model Context Protocol) server for
// word-search puzzle extraction and solving.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Stage inspection:
//   - puzzle_load: Load image and get metadata
//   - puzzle_binarize: Threshold, noise estimate and optional binary image
//   - puzzle_deskew: Skew angle estimate
//   - puzzle_locate_grid: Grid dividers, with an optional overlay
//
// Full pipeline:
//   - puzzle_extract: Cells, word list lines, words and letters; optionally
//     recognized text and artifact files
//   - puzzle_solve: Search a grid for words in eight directions
//   - puzzle_annotate: Recognize, solve and draw the found words
//   - puzzle_crop_cell: Image of a single grid cell
//
// # Caching
//
// Decoded images are cached by path, and so are extraction results, so a
// client can extract once and then crop cells or annotate without running
// the pipeline again. Both caches live for the lifetime of the process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: for pipeline failures an object with stage, kind and message;
//     otherwise the Go error string
//
// # Usage
//
//	srv := server.New(config.Default())
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
