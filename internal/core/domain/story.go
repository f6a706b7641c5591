package domain

import "time"

// Story is the metadata record for a generated story. Content generation and
// asset storage live outside this service; only ownership and visibility
// matter here.
type Story struct {
	StoryID   string    `json:"storyID"`
	OwnerID   string    `json:"ownerID"`
	Title     string    `json:"title"`
	Synopsis  *string   `json:"synopsis,omitempty"`
	IsPublic  bool      `json:"isPublic"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Story) ResourceOwnerID() string { return s.OwnerID }
func (s *Story) ResourcePublic() bool    { return s.IsPublic }
