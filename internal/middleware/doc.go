// Package middleware provides HTTP middleware for the Gatekeeper API.
//
// # Available Middleware
//
//   - RequestID: assigns or propagates X-Request-ID
//   - Logger: structured request logging via slog
//   - Recovery: turns panics into a problem+json 500
//   - Auth: validates bearer tokens issued for a guard
//   - RequireRole, RequirePermission: gate a route on the principal's claims
//
// Middlewares compose with Chain:
//
//	handler := middleware.Chain(mux,
//		middleware.RequestID,
//		middleware.Logger,
//		middleware.Recovery,
//	)
//
// # Context Values
//
// After Auth succeeds handlers read the principal with GetUserID and
// GetClaims. GetRequestID returns the request identifier.
package middleware
