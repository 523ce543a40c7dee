package storexmongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/reqcraft/reqcraft/storex"
)

// Repository is a MongoDB implementation of storex.Repository.
type Repository[T any] struct {
	collection *mongo.Collection
}

// NewRepository creates a MongoDB repository over the given collection.
func NewRepository[T any](collection *mongo.Collection) *Repository[T] {
	return &Repository[T]{collection: collection}
}

// FindAll lists all documents matching the query.
func (r *Repository[T]) FindAll(ctx context.Context, query storex.Query, opts ...storex.FindOptions) ([]T, error) {
	findOpts := options.Find()
	if len(opts) > 0 {
		o := opts[0]
		if o.Projection != nil {
			findOpts.SetProjection(toProjection(o.Projection))
		}
		if len(o.Sort) > 0 {
			findOpts.SetSort(toSort(o.Sort))
		}
		if o.Offset > 0 {
			findOpts.SetSkip(o.Offset)
		}
		if o.Limit > 0 {
			findOpts.SetLimit(o.Limit)
		}
	}

	cursor, err := r.collection.Find(ctx, normalize(query), findOpts)
	if err != nil {
		return nil, storex.StoreErrors.NewWithCause(storex.ErrFindFailed, err)
	}
	defer cursor.Close(ctx)

	var items []T
	if err = cursor.All(ctx, &items); err != nil {
		return nil, storex.StoreErrors.NewWithCause(storex.ErrDecodeFailed, err)
	}
	return items, nil
}

// FindOne retrieves a single document matching the query.
func (r *Repository[T]) FindOne(ctx context.Context, query storex.Query, opts ...storex.FindOptions) (T, error) {
	var empty T
	if len(query) == 0 {
		return empty, storex.StoreErrors.NewWithMessage(storex.ErrInvalidQuery, "No query provided")
	}

	findOpts := options.FindOne()
	if len(opts) > 0 && opts[0].Projection != nil {
		findOpts.SetProjection(toProjection(opts[0].Projection))
	}

	var result T
	err := r.collection.FindOne(ctx, normalize(query), findOpts).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return empty, storex.StoreErrors.New(storex.ErrRecordNotFound)
		}
		return empty, storex.StoreErrors.NewWithCause(storex.ErrFindFailed, err)
	}
	return result, nil
}

// FindByID retrieves a single document by its ObjectId.
func (r *Repository[T]) FindByID(ctx context.Context, id string, opts ...storex.FindOptions) (T, error) {
	var empty T
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return empty, storex.StoreErrors.NewWithMessage(storex.ErrInvalidID, "Invalid ObjectID format")
	}
	return r.FindOne(ctx, storex.Query{"_id": oid}, opts...)
}

// InsertOne stores a new document and returns it as persisted, including the
// generated id.
func (r *Repository[T]) InsertOne(ctx context.Context, item T) (T, error) {
	var empty T

	result, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		return empty, storex.StoreErrors.NewWithCause(storex.ErrInsertFailed, err)
	}

	var stored T
	if err := r.collection.FindOne(ctx, bson.M{"_id": result.InsertedID}).Decode(&stored); err != nil {
		return empty, storex.StoreErrors.NewWithCause(storex.ErrFindFailed, err)
	}
	return stored, nil
}

// InsertMany stores a batch of documents and returns the generated ids.
func (r *Repository[T]) InsertMany(ctx context.Context, items []T) ([]string, error) {
	if len(items) == 0 {
		return nil, nil
	}

	documents := make([]any, len(items))
	for i, item := range items {
		documents[i] = item
	}

	result, err := r.collection.InsertMany(ctx, documents)
	if err != nil {
		return nil, storex.StoreErrors.NewWithCause(storex.ErrInsertFailed, err)
	}

	ids := make([]string, 0, len(result.InsertedIDs))
	for _, raw := range result.InsertedIDs {
		if oid, ok := raw.(primitive.ObjectID); ok {
			ids = append(ids, oid.Hex())
		}
	}
	return ids, nil
}

// UpdateOne updates the first document matching the query and returns the
// matched count.
func (r *Repository[T]) UpdateOne(ctx context.Context, query storex.Query, update storex.Update, opts ...storex.UpdateOptions) (int64, error) {
	updateOpts := options.Update()
	if len(opts) > 0 && opts[0].Upsert {
		updateOpts.SetUpsert(true)
	}

	result, err := r.collection.UpdateOne(ctx, normalize(query), bson.M(update), updateOpts)
	if err != nil {
		return 0, storex.StoreErrors.NewWithCause(storex.ErrUpdateFailed, err)
	}
	if result.UpsertedCount > 0 {
		return result.UpsertedCount, nil
	}
	return result.MatchedCount, nil
}

// UpdateByID updates the document with the given ObjectId.
func (r *Repository[T]) UpdateByID(ctx context.Context, id string, update storex.Update, opts ...storex.UpdateOptions) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, storex.StoreErrors.NewWithMessage(storex.ErrInvalidID, "Invalid ObjectID format")
	}
	return r.UpdateOne(ctx, storex.Query{"_id": oid}, update, opts...)
}

// UpdateMany updates every document matching the query and returns the
// matched count.
func (r *Repository[T]) UpdateMany(ctx context.Context, query storex.Query, update storex.Update, opts ...storex.UpdateOptions) (int64, error) {
	updateOpts := options.Update()
	if len(opts) > 0 && opts[0].Upsert {
		updateOpts.SetUpsert(true)
	}

	result, err := r.collection.UpdateMany(ctx, normalize(query), bson.M(update), updateOpts)
	if err != nil {
		return 0, storex.StoreErrors.NewWithCause(storex.ErrUpdateFailed, err)
	}
	if result.UpsertedCount > 0 {
		return result.UpsertedCount, nil
	}
	return result.MatchedCount, nil
}

// FindOneAndUpdate updates a single document and returns it as it was before
// or after the update.
func (r *Repository[T]) FindOneAndUpdate(ctx context.Context, query storex.Query, update storex.Update, ret storex.ReturnDocument, opts ...storex.UpdateOptions) (T, error) {
	var empty T

	findOpts := options.FindOneAndUpdate()
	if len(opts) > 0 && opts[0].Upsert {
		findOpts.SetUpsert(true)
	}
	if ret == storex.ReturnAfter {
		findOpts.SetReturnDocument(options.After)
	} else {
		findOpts.SetReturnDocument(options.Before)
	}

	var result T
	err := r.collection.FindOneAndUpdate(ctx, normalize(query), bson.M(update), findOpts).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return empty, storex.StoreErrors.New(storex.ErrRecordNotFound)
		}
		return empty, storex.StoreErrors.NewWithCause(storex.ErrUpdateFailed, err)
	}
	return result, nil
}

// DeleteOne removes a single document matching the query.
func (r *Repository[T]) DeleteOne(ctx context.Context, query storex.Query) error {
	result, err := r.collection.DeleteOne(ctx, normalize(query))
	if err != nil {
		return storex.StoreErrors.NewWithCause(storex.ErrDeleteFailed, err)
	}
	if result.DeletedCount == 0 {
		return storex.StoreErrors.New(storex.ErrRecordNotFound)
	}
	return nil
}

// DeleteMany removes every document matching the query and returns the
// deleted count.
func (r *Repository[T]) DeleteMany(ctx context.Context, query storex.Query) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, normalize(query))
	if err != nil {
		return 0, storex.StoreErrors.NewWithCause(storex.ErrDeleteFailed, err)
	}
	return result.DeletedCount, nil
}

// normalize converts a storex.Query, including nested $and filter lists, to a
// driver filter document. When the query carries an "_id" given as a 24-hex
// string it is converted to an ObjectId so callers can filter by plain ids.
func normalize(query storex.Query) bson.M {
	filter := make(bson.M, len(query))
	for k, v := range query {
		switch tv := v.(type) {
		case storex.Query:
			filter[k] = normalize(tv)
		case []storex.Query:
			nested := make([]bson.M, len(tv))
			for i, q := range tv {
				nested[i] = normalize(q)
			}
			filter[k] = nested
		default:
			if k == "_id" {
				if s, ok := v.(string); ok {
					if oid, err := primitive.ObjectIDFromHex(s); err == nil {
						filter[k] = oid
						continue
					}
				}
			}
			filter[k] = v
		}
	}
	return filter
}

func toProjection(p storex.Projection) bson.M {
	projection := make(bson.M, len(p))
	for k, v := range p {
		projection[k] = v
	}
	return projection
}

func toSort(fields []storex.SortField) bson.D {
	sort := make(bson.D, 0, len(fields))
	for _, f := range fields {
		dir := 1
		if f.Desc {
			dir = -1
		}
		sort = append(sort, bson.E{Key: f.Key, Value: dir})
	}
	return sort
}
