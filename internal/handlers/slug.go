package handlers

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// generateUniqueSlug derives a URL-safe slug from a product name and probes
// the products collection for collisions, appending -1, -2, ... until a free
// value is found. excludeID keeps a document from colliding with itself on
// rename. The check and the later insert are not atomic; the unique index on
// slug is the backstop for concurrent identical names.
func generateUniqueSlug(ctx context.Context, products *mongo.Collection, name string, excludeID primitive.ObjectID) (string, error) {
	base := makeBaseSlug(name)

	taken := func(candidate string) (bool, error) {
		filter := bson.M{"slug": candidate}
		if !excludeID.IsZero() {
			filter["_id"] = bson.M{"$ne": excludeID}
		}
		count, err := products.CountDocuments(ctx, filter)
		if err != nil {
			return false, err
		}
		return count > 0, nil
	}

	return nextAvailableSlug(base, taken)
}

// makeBaseSlug lowercases, transliterates accents and strips anything that is
// not URL-safe.
func makeBaseSlug(name string) string {
	return slug.Make(name)
}

func nextAvailableSlug(base string, taken func(string) (bool, error)) (string, error) {
	inUse, err := taken(base)
	if err != nil {
		return "", err
	}
	if !inUse {
		return base, nil
	}

	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s-%d", base, counter)
		inUse, err := taken(candidate)
		if err != nil {
			return "", err
		}
		if !inUse {
			return candidate, nil
		}
	}
}
