package model

import "time"

// Review is a guest review, independent of any reservation. Reviews are
// created unpublished and only appear on the public site once an operator
// toggles the publication flag.
type Review struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Rating    int       `json:"rating"` // 1..5
	Text      string    `json:"text"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
}
