package entity

type NoteSort string

const (
	SortNewest    NoteSort = "newest"
	SortRating    NoteSort = "rating"
	SortDownloads NoteSort = "downloads"
)

// ParseNoteSort maps the query value to a sort mode, falling back to newest
// for empty or unknown values.
func ParseNoteSort(s string) NoteSort {
	switch NoteSort(s) {
	case SortRating:
		return SortRating
	case SortDownloads:
		return SortDownloads
	default:
		return SortNewest
	}
}

// NoteQuery holds the listing filters. Zero values mean "no filter"; all set
// filters are combined with AND.
type NoteQuery struct {
	// Search is matched case-insensitively as a substring of the title,
	// description, subject or course.
	Search   string
	Course   string
	Subject  string
	Semester *int
	OwnerID  int64
	Sort     NoteSort
}
