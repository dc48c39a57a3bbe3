package weread

// Notebook is one entry of /api/user/notebook.
type Notebook struct {
	BookID        string       `json:"bookId"`
	Book          NotebookBook `json:"book"`
	Sort          *int64       `json:"sort"`
	ReviewCount   int          `json:"reviewCount"`
	NoteCount     int          `json:"noteCount"`
	BookmarkCount int          `json:"bookmarkCount"`
}

type NotebookBook struct {
	BookID     string     `json:"bookId"`
	Title      string     `json:"title"`
	Author     string     `json:"author"`
	Cover      string     `json:"cover"`
	Sort       *int64     `json:"sort"`
	Categories []Category `json:"categories"`
}

type Category struct {
	CategoryID int    `json:"categoryId"`
	Title      string `json:"title"`
}

// ID prefers the nested book id and falls back to the entry's own.
func (n Notebook) ID() string {
	if n.Book.BookID != "" {
		return n.Book.BookID
	}
	return n.BookID
}

// SortKey returns the entry's sort, or the nested book's when the entry has none.
func (n Notebook) SortKey() *int64 {
	if n.Sort != nil {
		return n.Sort
	}
	return n.Book.Sort
}

// BookInfo matches /api/book/info
type BookInfo struct {
	BookID      string `json:"bookId"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Cover       string `json:"cover"`
	Intro       string `json:"intro"`
	ISBN        string `json:"isbn"`
	Publisher   string `json:"publisher"`
	NewRating   int    `json:"newRating"`
	PublishTime string `json:"publishTime"`
}

// Bookmark is a highlight from /web/book/bookmarklist ("updated").
type Bookmark struct {
	BookmarkID string `json:"bookmarkId"`
	BookID     string `json:"bookId"`
	ChapterUID *int   `json:"chapterUid"`
	Range      string `json:"range"`
	MarkText   string `json:"markText"`
	Style      *int   `json:"style"`
	ColorStyle *int   `json:"colorStyle"`
	Type       int    `json:"type"`
	CreateTime int64  `json:"createTime"`
}

type Chapter struct {
	ChapterUID *int   `json:"chapterUid"`
	ChapterIdx int    `json:"chapterIdx"`
	Title      string `json:"title"`
	Level      int    `json:"level"`
}

// ReadInfo matches /web/book/getProgress. Older responses carry the
// top-level fields, newer ones the nested progress record.
type ReadInfo struct {
	MarkedStatus int          `json:"markedStatus"`
	ReadingTime  int64        `json:"readingTime"`
	FinishedDate *int64       `json:"finishedDate"`
	Book         ReadProgress `json:"book"`
}

type ReadProgress struct {
	Progress       int   `json:"progress"`
	ReadingTime    int64 `json:"readingTime"`
	UpdateTime     int64 `json:"updateTime"`
	FinishTime     int64 `json:"finishTime"`
	IsStartReading int   `json:"isStartReading"`
}

// ReviewItem is one entry of /web/review/list.
type ReviewItem struct {
	ReviewID   string `json:"reviewId"`
	Review     Review `json:"review"`
	Style      *int   `json:"style"`
	ColorStyle *int   `json:"colorStyle"`
}

type Review struct {
	ReviewID   string `json:"reviewId"`
	BookID     string `json:"bookId"`
	Type       int    `json:"type"`
	Content    string `json:"content"`
	ChapterUID *int   `json:"chapterUid"`
	Range      string `json:"range"`
	Abstract   string `json:"abstract"`
	CreateTime int64  `json:"createTime"`
}

type notebookResponse struct {
	Books []Notebook `json:"books"`
}

type bookmarkListResponse struct {
	Updated  []Bookmark `json:"updated"`
	Chapters []Chapter  `json:"chapters"`
}

type reviewListResponse struct {
	Reviews []ReviewItem `json:"reviews"`
}
