// Package handler provides HTTP request handlers for the Gatekeeper API.
//
// Each handler struct carries the dependencies it needs and is built by a
// NewXxxHandler constructor. Successful responses go through WriteData;
// failures are RFC 9457 Problem Details written with WriteError.
//
//	me := handler.NewMeHandler(userRepo)
//	mux.Handle("GET /v1/me", authMiddleware(http.HandlerFunc(me.Get)))
package handler
