package entity

import "time"

type APIKey struct {
	ID        string    `json:"id" db:"id" firestore:"id"`
	Name      string    `json:"name" db:"name" firestore:"name"`
	HashedKey string    `json:"-" db:"hashed_key" firestore:"hashedKey"`
	Last4     string    `json:"last4" db:"last4" firestore:"last4"`
	Revoked   bool      `json:"revoked" db:"revoked" firestore:"revoked"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" firestore:"createdAt"`
}
