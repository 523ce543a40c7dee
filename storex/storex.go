package storex

import "context"

// Query is a raw query document matched against stored documents.
type Query map[string]any

// And combines several query documents so a document must match all of them.
func And(filters ...Query) Query {
	return Query{"$and": filters}
}

// Projection selects which fields a read returns. Keys map to 1 (include)
// or 0 (exclude), following document-store projection semantics.
type Projection map[string]int

// SortField describes one key of a sort order.
type SortField struct {
	Key  string
	Desc bool
}

// FindOptions tune a read operation.
type FindOptions struct {
	Projection Projection
	Sort       []SortField
	Limit      int64
	Offset     int64
}

// Update is a raw update document. Use Set for plain field replacement.
type Update map[string]any

// Set builds an update document that replaces the given fields.
func Set(fields map[string]any) Update {
	return Update{"$set": fields}
}

// UpdateOptions tune a write operation.
type UpdateOptions struct {
	Upsert bool
}

// ReturnDocument selects which version of a document FindOneAndUpdate returns.
type ReturnDocument int

const (
	ReturnBefore ReturnDocument = iota
	ReturnAfter
)

// Repository is the generic access surface over a document collection.
// Implementations are stateless and safe for concurrent use; consistency
// guarantees are those of the underlying store.
type Repository[T any] interface {
	FindAll(ctx context.Context, query Query, opts ...FindOptions) ([]T, error)
	FindOne(ctx context.Context, query Query, opts ...FindOptions) (T, error)
	FindByID(ctx context.Context, id string, opts ...FindOptions) (T, error)

	InsertOne(ctx context.Context, item T) (T, error)
	InsertMany(ctx context.Context, items []T) ([]string, error)

	// UpdateOne updates the first document matching query and returns the
	// matched count (0 when nothing matched and Upsert is off).
	UpdateOne(ctx context.Context, query Query, update Update, opts ...UpdateOptions) (int64, error)
	UpdateByID(ctx context.Context, id string, update Update, opts ...UpdateOptions) (int64, error)
	UpdateMany(ctx context.Context, query Query, update Update, opts ...UpdateOptions) (int64, error)

	// FindOneAndUpdate updates a single document and returns it as it was
	// before or after the update.
	FindOneAndUpdate(ctx context.Context, query Query, update Update, ret ReturnDocument, opts ...UpdateOptions) (T, error)

	DeleteOne(ctx context.Context, query Query) error
	DeleteMany(ctx context.Context, query Query) (int64, error)
}
