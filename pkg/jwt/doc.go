// Package jwt signs and validates the RS256 bearer tokens Gatekeeper issues.
//
// Tokens are scoped to a guard through the audience claim, so a token signed
// for the "api" guard is rejected by middleware protecting the "admin"
// guard.
//
//	svc, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "./keys/private.pem",
//	    Issuer:         "gatekeeper",
//	    ExpirationMins: 15,
//	})
//
//	token, err := svc.Sign(jwt.Claims{UserID: user.ID}, "api")
//	claims, err := svc.Validate(token, "api")
//
// Signing and parsing are delegated to github.com/golang-jwt/jwt/v5; this
// package owns key loading, the claim shape and the error vocabulary.
package jwt
