package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Provider links an account to an external identity provider.
type Provider struct {
	Provider   string `bson:"provider" json:"provider"`
	ProviderID string `bson:"providerId" json:"providerId"`
}

// User represents a storefront account. Password is empty for accounts that
// only ever signed in through a federated provider.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Username  string             `bson:"username" json:"username"`
	Password  string             `bson:"password" json:"-"`
	Avatar    string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Providers []Provider         `bson:"providers" json:"providers"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasProvider reports whether the given provider is already linked.
func (u User) HasProvider(name string) bool {
	for _, p := range u.Providers {
		if p.Provider == name {
			return true
		}
	}
	return false
}
