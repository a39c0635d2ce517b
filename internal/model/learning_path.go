package model

// LearningPath is an ordered sequence of activities for one skill tier.
// swagger:model LearningPath
type LearningPath struct {
	BaseModel
	Title              string     `gorm:"size:255;not null" json:"title"`
	Description        string     `gorm:"type:text" json:"description"`
	Topic              string     `gorm:"size:100;index" json:"topic"`
	RequiredSkillLevel SkillLevel `gorm:"type:enum('beginner','intermediate','advanced','expert');default:'beginner';index" json:"requiredSkillLevel"`
	IsPublished        bool       `gorm:"default:false;index" json:"isPublished"`
	CreatorID          uint       `gorm:"index;type:bigint unsigned" json:"creatorId"`
	Nodes              []PathNode `gorm:"foreignKey:PathID" json:"nodes,omitempty"`
}

func (LearningPath) TableName() string {
	return "learning_paths"
}

// swagger:model PathNode
type PathNode struct {
	BaseModel
	PathID     uint `gorm:"index:idx_path_position;type:bigint unsigned;not null" json:"pathId"`
	ActivityID uint `gorm:"index;type:bigint unsigned;not null" json:"activityId"`
	Position   int  `gorm:"index:idx_path_position;default:0" json:"position"`
}

func (PathNode) TableName() string {
	return "path_nodes"
}
