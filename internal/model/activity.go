package model

type ActivityType string

const (
	ActivityExercise ActivityType = "exercise"
	ActivityProject  ActivityType = "project"
	ActivityGame     ActivityType = "game"
	ActivityReading  ActivityType = "reading"
)

// Activity is a learnable unit of the catalog; completing it feeds the
// student progress aggregate.
// swagger:model Activity
type Activity struct {
	BaseModel
	Title              string       `gorm:"size:255;not null" json:"title"`
	Description        string       `gorm:"type:text" json:"description"`
	Topic              string       `gorm:"size:100;index;not null" json:"topic"` // stable topic code, e.g. "loops"
	Type               ActivityType `gorm:"type:enum('exercise','project','game','reading');default:'exercise'" json:"type"`
	DifficultyLevel    SkillLevel   `gorm:"type:enum('beginner','intermediate','advanced','expert');default:'beginner';index" json:"difficultyLevel"`
	Points             int          `gorm:"default:0" json:"points"`
	LearningObjectives []string     `gorm:"serializer:json;type:json" json:"learningObjectives"`
	EstimatedMinutes   int          `gorm:"default:0" json:"estimatedMinutes"`
	IsPublished        bool         `gorm:"default:false;index" json:"isPublished"`
	CreatorID          uint         `gorm:"index;type:bigint unsigned" json:"creatorId"`
}

func (Activity) TableName() string {
	return "activities"
}
