// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP helpers shared by all handlers.

  - WithLogging: request/completion logging via slog
  - CORS: cross-origin headers and preflight handling
  - JSONResponse / ErrorResponse: JSON writers
  - ParseJSONBody: request body decoding
*/
package middleware
