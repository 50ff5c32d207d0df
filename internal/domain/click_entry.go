package domain

import "time"

// DayFormat is the calendar-day layout used throughout click history.
// Days are always taken in UTC so that history stays deterministic across
// server time zones.
const DayFormat = "2006-01-02"

// Day returns the UTC calendar day of t in click-history format.
func Day(t time.Time) string {
	return t.UTC().Format(DayFormat)
}

// ClickEntry is one day's redirect count for a link. There is at most one
// entry per (link, day); the resolution path increments it atomically.
type ClickEntry struct {
	ID     int64  `gorm:"primaryKey;column:id" json:"-"`
	LinkID int64  `gorm:"column:link_id;not null;uniqueIndex:idx_link_day" json:"-"`
	Date   string `gorm:"column:date;size:10;not null;uniqueIndex:idx_link_day" json:"date"`
	Count  int64  `gorm:"column:count;not null;default:0" json:"count"`
}

// TableName returns the table name for GORM.
func (ClickEntry) TableName() string {
	return "link_clicks"
}
