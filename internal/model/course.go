package model

type LessonType string

const (
	LessonVideo     LessonType = "video"
	LessonArticle   LessonType = "article"
	LessonWorksheet LessonType = "worksheet"
	LessonQuiz      LessonType = "quiz"
)

// Course groups lessons for one subject and grade band.
// swagger:model Course
type Course struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Subject     string `gorm:"size:100;not null" json:"subject"`
	GradeBand   string `gorm:"size:20" json:"gradeBand"` // e.g. K-2, 3-5, 6-8, 9-12
	CreatorID   uint   `gorm:"index;type:bigint unsigned" json:"creatorId"`
	IsPublished bool   `gorm:"default:false;index" json:"isPublished"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model Lesson
type Lesson struct {
	BaseModel
	CourseID    uint       `gorm:"index;type:bigint unsigned;not null" json:"courseId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Type        LessonType `gorm:"type:enum('video','article','worksheet','quiz');not null" json:"type"`
	URL         string     `gorm:"size:255" json:"url"`
	Duration    float64    `gorm:"default:0" json:"duration"` // seconds, probed for videos
	Format      string     `gorm:"size:50" json:"format"`
	Thumbnail   string     `gorm:"size:255" json:"thumbnail"`
	SortOrder   int        `gorm:"default:0" json:"sortOrder"`
	IsPublished bool       `gorm:"default:false;index" json:"isPublished"`
	UploaderID  uint       `gorm:"index;type:bigint unsigned" json:"uploaderId"`
}

func (Lesson) TableName() string {
	return "lessons"
}
