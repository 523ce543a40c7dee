// Package errx provides structured, registry-based error handling for HTTP
// services.
//
// Errors are declared up front in a Registry, which groups related codes under
// a common prefix and fixes their classification type, HTTP status and default
// message in one place:
//
//	var (
//		UserErrors = errx.NewRegistry("USER")
//
//		ErrUserNotFound = UserErrors.Register("NOT_FOUND", errx.TypeNotFound, 404, "User not found")
//		ErrUserExists   = UserErrors.Register("EXISTS", errx.TypeConflict, 409, "User already exists")
//	)
//
// At failure sites errors are created from their codes and enriched with
// context:
//
//	return UserErrors.NewWithCause(ErrUserNotFound, err).
//		WithDetail("user_id", id)
//
// Callers match on codes rather than messages:
//
//	if errx.IsCode(err, ErrUserNotFound) {
//		// handle the missing user
//	}
//
// The package also ships the standard HTTP error hierarchy (HTTPErrors) with
// fixed default messages for the common client and server statuses, and the
// Envelope type that defines the wire shape of every error response:
//
//	{
//		"statusCode": 400,
//		"error": {
//			"message": "The request is invalid. Please try again.",
//			"code": "HTTP_BAD_REQUEST",
//			"errors": { ... }
//		}
//	}
//
// Transport adapters live in subpackages; errxfiber maps errors onto Fiber
// responses.
package errx
