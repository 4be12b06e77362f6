package models

import "time"

// Post mirrors the remote API's post document. Author, Title and Avatar are
// snapshots of the author's profile taken at post time. Comments and Reposts
// are display-only counters.
type Post struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	UserEmail string    `json:"userEmail"`
	Author    string    `json:"author"`
	Title     string    `json:"title"`
	Avatar    string    `json:"avatar"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Likes     int       `json:"likes"`
	Comments  int       `json:"comments"`
	Reposts   int       `json:"reposts"`
	LikedBy   []string  `json:"likedBy"`
}

// LikedByUser reports whether the given user id is in the post's liker set.
func (p Post) LikedByUser(userID string) bool {
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}
