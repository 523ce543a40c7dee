// Package storex provides a generic access layer over document collections.
//
// A Repository[T] exposes the CRUD-style query helpers the rest of the
// toolkit builds on: reads by raw query document, id lookups, inserts,
// targeted and bulk updates with optional upsert, and deletes. Query, Update
// and the option structs keep the calling code free of driver types, so the
// same data access code runs against MongoDB in production and the in-memory
// provider in tests.
//
// Basic usage with the MongoDB provider:
//
//	import (
//		"context"
//
//		"github.com/reqcraft/reqcraft/storex"
//		"github.com/reqcraft/reqcraft/storex/providers/storexmongo"
//		"go.mongodb.org/mongo-driver/bson/primitive"
//	)
//
//	type Article struct {
//		ID     primitive.ObjectID `bson:"_id,omitempty"`
//		Title  string             `bson:"title"`
//		Status string             `bson:"status"`
//		Views  int64              `bson:"views"`
//	}
//
//	func Example(ctx context.Context, db *mongo.Database) error {
//		articles := storexmongo.NewRepository[Article](db.Collection("articles"))
//
//		created, err := articles.InsertOne(ctx, Article{Title: "Hello", Status: "draft"})
//		if err != nil {
//			return err
//		}
//
//		published, err := articles.FindAll(ctx,
//			storex.Query{"status": "published"},
//			storex.FindOptions{
//				Sort:  []storex.SortField{{Key: "views", Desc: true}},
//				Limit: 20,
//			},
//		)
//		if err != nil {
//			return err
//		}
//		_ = published
//
//		_, err = articles.UpdateByID(ctx, created.ID.Hex(),
//			storex.Set(map[string]any{"status": "published"}))
//		return err
//	}
//
// Several filter documents can be combined with And, mirroring an $and list:
//
//	rules, err := repo.FindAll(ctx, storex.And(
//		storex.Query{"isActive": true},
//		storex.Query{"method": "GET"},
//	))
//
// Failures are reported through the StoreErrors registry; use the Is*
// helpers (IsRecordNotFound, IsInvalidID, ...) to branch on outcomes without
// string matching.
package storex
