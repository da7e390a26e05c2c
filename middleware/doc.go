// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, client IP) and completion (status,
duration_ms). Every request carries an id, taken from the client's
X-Request-ID header or generated with google/uuid, that is echoed in the
response and available to handlers:

	id := middleware.RequestID(r.Context())

# Panic Recovery

	handler = middleware.WithRecovery(cfg.IsDevelopment())(handler)

A panic becomes a 500 with message "Internal server error". In development
the body also carries the stack trace.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization, X-Request-ID.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, models.StatusVoterCreated, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "voter not found")

ErrorResponse fills "error" with the status text, including the custom
2xx codes from package models.

Parse JSON request bodies strictly (unknown fields rejected, 10 MiB cap):

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		...
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
