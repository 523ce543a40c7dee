package storex

import "github.com/reqcraft/reqcraft/errx"

// StoreErrors is the error registry shared by all storage providers.
var StoreErrors = errx.NewRegistry("STORE")

var (
	ErrInvalidQuery     = StoreErrors.Register("INVALID_QUERY", errx.TypeValidation, 400, "invalid query")
	ErrInvalidID        = StoreErrors.Register("INVALID_ID", errx.TypeValidation, 400, "invalid record id")
	ErrRecordNotFound   = StoreErrors.Register("RECORD_NOT_FOUND", errx.TypeNotFound, 404, "record not found")
	ErrConnectionFailed = StoreErrors.Register("CONNECTION_FAILED", errx.TypeUnavailable, 503, "storage connection failed")
	ErrFindFailed       = StoreErrors.Register("FIND_FAILED", errx.TypeInternal, 500, "find operation failed")
	ErrDecodeFailed     = StoreErrors.Register("DECODE_FAILED", errx.TypeInternal, 500, "failed to decode record")
	ErrInsertFailed     = StoreErrors.Register("INSERT_FAILED", errx.TypeInternal, 500, "insert operation failed")
	ErrUpdateFailed     = StoreErrors.Register("UPDATE_FAILED", errx.TypeInternal, 500, "update operation failed")
	ErrDeleteFailed     = StoreErrors.Register("DELETE_FAILED", errx.TypeInternal, 500, "delete operation failed")
)

// IsRecordNotFound reports whether err is a record-not-found storage error.
func IsRecordNotFound(err error) bool { return errx.IsCode(err, ErrRecordNotFound) }

// IsConnectionFailed reports whether err is a storage connectivity error.
func IsConnectionFailed(err error) bool { return errx.IsCode(err, ErrConnectionFailed) }

// IsInvalidQuery reports whether err was caused by a malformed query.
func IsInvalidQuery(err error) bool { return errx.IsCode(err, ErrInvalidQuery) }

// IsInvalidID reports whether err was caused by a malformed record id.
func IsInvalidID(err error) bool { return errx.IsCode(err, ErrInvalidID) }
