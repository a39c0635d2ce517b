package model

// ConsentRecord holds a student's (guardian's) analytics consent flags.
// Event ingestion is gated on AllowAnalytics; recommendation
// personalization on AllowPersonalization.
// swagger:model ConsentRecord
type ConsentRecord struct {
	BaseModel
	StudentID            uint `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"studentId"`
	AllowAnalytics       bool `gorm:"default:false" json:"allowAnalytics"`
	AllowPersonalization bool `gorm:"default:false" json:"allowPersonalization"`
}

func (ConsentRecord) TableName() string {
	return "consent_records"
}
