package domain

import "time"

// Link is a shortened URL record. The ID is assigned by the storage layer
// before insert and is the seed for short-code derivation. OriginalURL and
// ShortCode are immutable after creation; only the click counters grow.
type Link struct {
	ID           int64        `gorm:"primaryKey;column:id" json:"id,string"`
	ShortCode    string       `gorm:"column:short_code;size:10;uniqueIndex;not null" json:"shortCode"`
	OriginalURL  string       `gorm:"column:original_url;type:text;not null" json:"originalUrl"`
	ClickCount   int64        `gorm:"column:click_count;not null;default:0" json:"clickCount"`
	ClickHistory []ClickEntry `gorm:"foreignKey:LinkID;constraint:OnDelete:CASCADE" json:"clickHistory"`
	CreatedAt    time.Time    `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time    `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// TableName returns the table name for GORM.
func (Link) TableName() string {
	return "links"
}
