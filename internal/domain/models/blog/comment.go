package blog

import "time"

// CommentStatus is the moderation state of a comment
type CommentStatus string

const (
	CommentPending  CommentStatus = "pending"
	CommentApproved CommentStatus = "approved"
	CommentSpam     CommentStatus = "spam"
	CommentDeleted  CommentStatus = "deleted" // soft delete marker
)

// CommentAuthor is the user subset denormalized onto a comment
type CommentAuthor struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// CommentEdit records the content a comment had before an edit
type CommentEdit struct {
	PriorContent string    `json:"priorContent"`
	EditedAt     time.Time `json:"editedAt"`
}

type Comment struct {
	ID          string        `json:"id"`
	PostID      string        `json:"postId"`
	ParentID    string        `json:"parentId,omitempty"`
	Author      CommentAuthor `json:"author"`
	Content     string        `json:"content"`
	Status      CommentStatus `json:"status"`
	Likes       int           `json:"likes"`
	EditHistory []CommentEdit `json:"editHistory,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// Clone returns a deep copy of c
func (c *Comment) Clone() Comment {
	out := *c
	if c.EditHistory != nil {
		out.EditHistory = append([]CommentEdit(nil), c.EditHistory...)
	}
	return out
}
