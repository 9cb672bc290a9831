package contract

// NoteListRequest is bound from the listing query string.
type NoteListRequest struct {
	Search   string `query:"search"`
	Sort     string `query:"sort"`
	Course   string `query:"course"`
	Subject  string `query:"subject"`
	Semester string `query:"semester" validate:"omitempty,number"`
}

// CreateNoteRequest holds the text parts of the multipart upload; the file
// part is read separately.
type CreateNoteRequest struct {
	Title       string `form:"title" validate:"required,max=200"`
	Course      string `form:"course" validate:"required,max=80"`
	Subject     string `form:"subject" validate:"required,max=120"`
	Semester    string `form:"semester" validate:"omitempty,number"`
	Description string `form:"description" validate:"max=5000"`
}

type RateRequest struct {
	Rating int `json:"rating" validate:"gte=1,lte=5"`
}

type CommentRequest struct {
	Content string `json:"content" validate:"notblank,max=2000"`
}

type NoteResponse struct {
	ID          int64    `json:"id"`
	UserID      int64    `json:"user_id"`
	Course      string   `json:"course"`
	Title       string   `json:"title"`
	Subject     string   `json:"subject"`
	Semester    *int     `json:"semester"`
	Description *string  `json:"description"`
	FilePath    string   `json:"file_path"`
	FileType    string   `json:"file_type"`
	Downloads   int64    `json:"downloads"`
	CreatedAt   string   `json:"created_at"`
	AuthorName  string   `json:"author_name"`
	AvgRating   *float64 `json:"avg_rating"`
	RatingCount int64    `json:"rating_count"`
	LikeCount   int64    `json:"like_count"`
}

type NoteDetailResponse struct {
	*NoteResponse
	Comments []*CommentResponse `json:"comments"`
}

type CommentResponse struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	NoteID    int64  `json:"note_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UserName  string `json:"user_name"`
}

type CreatedResponse struct {
	ID int64 `json:"id"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type LikeResponse struct {
	Liked bool `json:"liked"`
}
