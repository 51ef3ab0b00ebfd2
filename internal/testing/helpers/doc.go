// Package helpers provides test utilities for exercising the Gatekeeper API.
//
// # Acting As A User
//
// Session records which user acts for each guard and signs bearer tokens
// for them:
//
//	sess := helpers.NewSession(t, helpers.NewTestJWTService(t))
//	sess.ActAs(user, "api")
//	req := sess.NewRequest(http.MethodGet, "/v1/me").Build()
//
// # Assertion Helpers
//
//	helpers.AssertStatus(t, rr, http.StatusOK)
//	helpers.AssertProblemDetails(t, rr, http.StatusForbidden, model.ErrCodeMissingRole)
//	helpers.AssertRecordExists(t, db, "user", user.ID)
package helpers
