package blog

// State is the whole persisted content collection.
// It is stored as one JSON document: {posts, categories, tags, comments}.
type State struct {
	Posts      []Post     `json:"posts"`
	Categories []Category `json:"categories"`
	Tags       []Tag      `json:"tags"`
	Comments   []Comment  `json:"comments"`
}

// NewState returns an empty collection with non-nil slices
func NewState() *State {
	return &State{
		Posts:      []Post{},
		Categories: []Category{},
		Tags:       []Tag{},
		Comments:   []Comment{},
	}
}

// Clone returns a deep copy so a mutation can be staged without touching s
func (s *State) Clone() *State {
	c := &State{
		Posts:      make([]Post, len(s.Posts)),
		Categories: append(make([]Category, 0, len(s.Categories)), s.Categories...),
		Tags:       append(make([]Tag, 0, len(s.Tags)), s.Tags...),
		Comments:   make([]Comment, len(s.Comments)),
	}
	for i := range s.Posts {
		c.Posts[i] = s.Posts[i].Clone()
	}
	for i := range s.Comments {
		c.Comments[i] = s.Comments[i].Clone()
	}
	return c
}

// Normalize replaces nil slices left by older or hand-written documents
func (s *State) Normalize() {
	if s.Posts == nil {
		s.Posts = []Post{}
	}
	if s.Categories == nil {
		s.Categories = []Category{}
	}
	if s.Tags == nil {
		s.Tags = []Tag{}
	}
	if s.Comments == nil {
		s.Comments = []Comment{}
	}
}

func (s *State) postIndex(id string) int {
	for i := range s.Posts {
		if s.Posts[i].ID == id {
			return i
		}
	}
	return -1
}

// FindPost returns a pointer into s.Posts, or nil
func (s *State) FindPost(id string) *Post {
	if i := s.postIndex(id); i >= 0 {
		return &s.Posts[i]
	}
	return nil
}

// FindCategory returns a pointer into s.Categories, or nil
func (s *State) FindCategory(id string) *Category {
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			return &s.Categories[i]
		}
	}
	return nil
}

// FindTag returns a pointer into s.Tags, or nil
func (s *State) FindTag(id string) *Tag {
	for i := range s.Tags {
		if s.Tags[i].ID == id {
			return &s.Tags[i]
		}
	}
	return nil
}

// FindComment returns a pointer into s.Comments, or nil
func (s *State) FindComment(id string) *Comment {
	for i := range s.Comments {
		if s.Comments[i].ID == id {
			return &s.Comments[i]
		}
	}
	return nil
}

// SlugTaken reports whether any post other than exceptID uses slug
func (s *State) SlugTaken(slug, exceptID string) bool {
	for i := range s.Posts {
		if s.Posts[i].Slug == slug && s.Posts[i].ID != exceptID {
			return true
		}
	}
	return false
}
