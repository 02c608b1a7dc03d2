package models

import "time"

// Review is one party's rating of the other after a completed request.
// At most one review exists per (requestId, reviewerId).
type Review struct {
	ID         string    `bson:"id" json:"id"`
	RequestID  string    `bson:"requestId" json:"requestId"`
	ReviewerID string    `bson:"reviewerId" json:"reviewerId"`
	RevieweeID string    `bson:"revieweeId" json:"revieweeId"`
	Rating     int       `bson:"rating" json:"rating"` // 1-5
	Comment    string    `bson:"comment" json:"comment"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// ReviewInput is the payload for submitting a review.
type ReviewInput struct {
	RequestID string `json:"requestId" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment" binding:"required"`
}
