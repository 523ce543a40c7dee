package storexmemory

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/reqcraft/reqcraft/storex"
)

// Repository is an in-memory implementation of storex.Repository backed by a
// map of BSON documents. It supports top-level equality queries and $and
// filter lists, and $set updates — the query surface the toolkit itself uses.
// Intended for tests and local wiring, not production storage.
type Repository[T any] struct {
	mu    sync.RWMutex
	docs  map[string]bson.M
	order []string
}

// NewRepository creates an empty in-memory repository.
func NewRepository[T any]() *Repository[T] {
	return &Repository[T]{docs: make(map[string]bson.M)}
}

// FindAll lists all documents matching the query.
func (r *Repository[T]) FindAll(ctx context.Context, query storex.Query, opts ...storex.FindOptions) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []bson.M
	for _, id := range r.order {
		doc := r.docs[id]
		if matches(doc, query) {
			matched = append(matched, doc)
		}
	}

	if len(opts) > 0 {
		o := opts[0]
		if len(o.Sort) > 0 {
			sortDocs(matched, o.Sort)
		}
		if o.Offset > 0 {
			if o.Offset >= int64(len(matched)) {
				matched = nil
			} else {
				matched = matched[o.Offset:]
			}
		}
		if o.Limit > 0 && o.Limit < int64(len(matched)) {
			matched = matched[:o.Limit]
		}
	}

	items := make([]T, 0, len(matched))
	for _, doc := range matched {
		item, err := fromDoc[T](doc)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// FindOne retrieves the first stored document matching the query.
func (r *Repository[T]) FindOne(ctx context.Context, query storex.Query, opts ...storex.FindOptions) (T, error) {
	var empty T
	if len(query) == 0 {
		return empty, storex.StoreErrors.NewWithMessage(storex.ErrInvalidQuery, "No query provided")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if matches(r.docs[id], query) {
			return fromDoc[T](r.docs[id])
		}
	}
	return empty, storex.StoreErrors.New(storex.ErrRecordNotFound)
}

// FindByID retrieves a single document by its hex id.
func (r *Repository[T]) FindByID(ctx context.Context, id string, opts ...storex.FindOptions) (T, error) {
	var empty T
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return empty, storex.StoreErrors.NewWithMessage(storex.ErrInvalidID, "Invalid ObjectID format")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[id]
	if !ok {
		return empty, storex.StoreErrors.New(storex.ErrRecordNotFound)
	}
	return fromDoc[T](doc)
}

// InsertOne stores a new document, generating an id when none is set.
func (r *Repository[T]) InsertOne(ctx context.Context, item T) (T, error) {
	var empty T
	doc, err := toDoc(item)
	if err != nil {
		return empty, err
	}

	oid := documentID(doc)
	if oid.IsZero() {
		oid = primitive.NewObjectID()
		doc["_id"] = oid
	}

	r.mu.Lock()
	r.docs[oid.Hex()] = doc
	r.order = append(r.order, oid.Hex())
	r.mu.Unlock()

	return fromDoc[T](doc)
}

// InsertMany stores a batch of documents and returns the generated ids.
func (r *Repository[T]) InsertMany(ctx context.Context, items []T) ([]string, error) {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		stored, err := r.InsertOne(ctx, item)
		if err != nil {
			return nil, err
		}
		doc, err := toDoc(stored)
		if err != nil {
			return nil, err
		}
		ids = append(ids, documentID(doc).Hex())
	}
	return ids, nil
}

// UpdateOne applies a $set update to the first matching document.
func (r *Repository[T]) UpdateOne(ctx context.Context, query storex.Query, update storex.Update, opts ...storex.UpdateOptions) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.order {
		if matches(r.docs[id], query) {
			applyUpdate(r.docs[id], update)
			return 1, nil
		}
	}
	return 0, nil
}

// UpdateByID applies a $set update to the document with the given hex id.
func (r *Repository[T]) UpdateByID(ctx context.Context, id string, update storex.Update, opts ...storex.UpdateOptions) (int64, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return 0, storex.StoreErrors.NewWithMessage(storex.ErrInvalidID, "Invalid ObjectID format")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok {
		return 0, nil
	}
	applyUpdate(doc, update)
	return 1, nil
}

// UpdateMany applies a $set update to every matching document.
func (r *Repository[T]) UpdateMany(ctx context.Context, query storex.Query, update storex.Update, opts ...storex.UpdateOptions) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, id := range r.order {
		if matches(r.docs[id], query) {
			applyUpdate(r.docs[id], update)
			count++
		}
	}
	return count, nil
}

// FindOneAndUpdate applies a $set update to the first matching document and
// returns it as it was before or after the update.
func (r *Repository[T]) FindOneAndUpdate(ctx context.Context, query storex.Query, update storex.Update, ret storex.ReturnDocument, opts ...storex.UpdateOptions) (T, error) {
	var empty T

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.order {
		doc := r.docs[id]
		if !matches(doc, query) {
			continue
		}
		before, err := fromDoc[T](doc)
		if err != nil {
			return empty, err
		}
		applyUpdate(doc, update)
		if ret == storex.ReturnBefore {
			return before, nil
		}
		return fromDoc[T](doc)
	}
	return empty, storex.StoreErrors.New(storex.ErrRecordNotFound)
}

// DeleteOne removes the first matching document.
func (r *Repository[T]) DeleteOne(ctx context.Context, query storex.Query) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, id := range r.order {
		if matches(r.docs[id], query) {
			delete(r.docs, id)
			r.order = append(r.order[:i], r.order[i+1:]...)
			return nil
		}
	}
	return storex.StoreErrors.New(storex.ErrRecordNotFound)
}

// DeleteMany removes every matching document.
func (r *Repository[T]) DeleteMany(ctx context.Context, query storex.Query) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	remaining := r.order[:0]
	for _, id := range r.order {
		if matches(r.docs[id], query) {
			delete(r.docs, id)
			count++
			continue
		}
		remaining = append(remaining, id)
	}
	r.order = remaining
	return count, nil
}

func toDoc[T any](item T) (bson.M, error) {
	raw, err := bson.Marshal(item)
	if err != nil {
		return nil, storex.StoreErrors.NewWithCause(storex.ErrDecodeFailed, err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, storex.StoreErrors.NewWithCause(storex.ErrDecodeFailed, err)
	}
	return doc, nil
}

func fromDoc[T any](doc bson.M) (T, error) {
	var item T
	raw, err := bson.Marshal(doc)
	if err != nil {
		return item, storex.StoreErrors.NewWithCause(storex.ErrDecodeFailed, err)
	}
	if err := bson.Unmarshal(raw, &item); err != nil {
		return item, storex.StoreErrors.NewWithCause(storex.ErrDecodeFailed, err)
	}
	return item, nil
}

func documentID(doc bson.M) primitive.ObjectID {
	if oid, ok := doc["_id"].(primitive.ObjectID); ok {
		return oid
	}
	return primitive.NilObjectID
}

func matches(doc bson.M, query storex.Query) bool {
	for key, want := range query {
		if key == "$and" {
			switch filters := want.(type) {
			case []storex.Query:
				for _, f := range filters {
					if !matches(doc, f) {
						return false
					}
				}
			default:
				return false
			}
			continue
		}
		if !valueEqual(doc[key], want) {
			return false
		}
	}
	return true
}

// valueEqual compares a stored BSON value against a query value, tolerating
// the numeric widenings a BSON round trip introduces and hex-string ids.
func valueEqual(got, want any) bool {
	if oid, ok := got.(primitive.ObjectID); ok {
		if s, ok := want.(string); ok {
			return oid.Hex() == s
		}
		if woid, ok := want.(primitive.ObjectID); ok {
			return oid == woid
		}
		return false
	}

	gn, gok := asFloat(got)
	wn, wok := asFloat(want)
	if gok && wok {
		return gn == wn
	}

	return got == want
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func applyUpdate(doc bson.M, update storex.Update) {
	for op, payload := range update {
		if op != "$set" {
			continue
		}
		switch fields := payload.(type) {
		case map[string]any:
			for k, v := range fields {
				doc[k] = v
			}
		case bson.M:
			for k, v := range fields {
				doc[k] = v
			}
		}
	}
}

func sortDocs(docs []bson.M, fields []storex.SortField) {
	sort.SliceStable(docs, func(i, j int) bool {
		for _, f := range fields {
			c := compare(docs[i][f.Key], docs[j][f.Key])
			if c == 0 {
				continue
			}
			if f.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func compare(a, b any) int {
	an, aok := asFloat(a)
	bn, bok := asFloat(b)
	if aok && bok {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		default:
			return 0
		}
	}

	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		}
	}
	return 0
}
