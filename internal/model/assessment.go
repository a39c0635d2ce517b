package model

// Assessment is a scored check of one topic.
// swagger:model Assessment
type Assessment struct {
	BaseModel
	Title           string     `gorm:"size:255;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	Topic           string     `gorm:"size:100;index;not null" json:"topic"`
	DifficultyLevel SkillLevel `gorm:"type:enum('beginner','intermediate','advanced','expert');default:'beginner';index" json:"difficultyLevel"`
	Points          int        `gorm:"default:0" json:"points"`
	QuestionCount   int        `gorm:"default:0" json:"questionCount"`
	PassingScore    int        `gorm:"default:60" json:"passingScore"`
	IsPublished     bool       `gorm:"default:false;index" json:"isPublished"`
	CreatorID       uint       `gorm:"index;type:bigint unsigned" json:"creatorId"`
}

func (Assessment) TableName() string {
	return "assessments"
}
