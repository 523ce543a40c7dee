// Package rulexmongo resolves validation rules from a MongoDB collection.
package rulexmongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/reqcraft/reqcraft/storex"
	"github.com/reqcraft/reqcraft/storex/providers/storexmongo"
	"github.com/reqcraft/reqcraft/validatex"
)

// Collection is the MongoDB collection holding RouteRule documents.
const Collection = "RequestValidationConfig"

// Source looks up active route rules through a storex repository.
type Source struct {
	rules storex.Repository[validatex.RouteRule]
}

// New creates a rule source backed by the given repository.
func New(rules storex.Repository[validatex.RouteRule]) *Source {
	return &Source{rules: rules}
}

// NewFromDatabase creates a rule source reading from the default collection
// of the given database.
func NewFromDatabase(db *mongo.Database) *Source {
	return New(NewRepository(db))
}

// NewRepository opens the default rule collection as a storex repository, for
// callers that manage rule documents rather than read them.
func NewRepository(db *mongo.Database) storex.Repository[validatex.RouteRule] {
	return storexmongo.NewRepository[validatex.RouteRule](db.Collection(Collection))
}

// Active implements validatex.RuleSource. A missing rule is not an error:
// routes without configuration skip validation.
func (s *Source) Active(ctx context.Context, routeName, method string) (*validatex.RouteRule, error) {
	rule, err := s.rules.FindOne(ctx, storex.Query{
		"routeName": routeName,
		"method":    method,
		"isActive":  true,
	})
	if err != nil {
		if storex.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}
