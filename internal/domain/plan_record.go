// internal/domain/plan_record.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanSource records which synthesizer produced a plan.
type PlanSource string

const (
	PlanSourceRemote   PlanSource = "remote"
	PlanSourceFallback PlanSource = "fallback"
)

// PlanRecord is an archived plan as shown in the "my plans" library.
type PlanRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	PlanID    string             `bson:"planId" json:"planId"`
	UserID    string             `bson:"userId,omitempty" json:"userId,omitempty"` // empty for anonymous requests
	Source    PlanSource         `bson:"source" json:"source"`
	Answers   Answers            `bson:"answers" json:"answers"`
	Plan      Plan               `bson:"plan" json:"plan"`
	ExportKey string             `bson:"exportKey,omitempty" json:"-"` // object key once exported to storage
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
