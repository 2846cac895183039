package models

import "time"

// AliasMaxLength максимальная длина пользовательского алиаса.
const AliasMaxLength = 20

// RecentIPsLimit сколько последних IP адресов отдается в аналитике.
const RecentIPsLimit = 5

// Click одно событие перехода по короткой ссылке.
type Click struct {
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	IP        string    `json:"ip"        bson:"ip"`
}

// ShortLink структура модели хранения короткой ссылки.
type ShortLink struct {
	ID          uint       `json:"-"           bson:"-"                   gorm:"primaryKey"`
	OriginalURL string     `json:"originalUrl" bson:"originalUrl"         gorm:"not null"`
	ShortURL    string     `json:"shortUrl"    bson:"shortUrl"            gorm:"uniqueIndex;not null"`
	Alias       *string    `json:"alias"       bson:"alias,omitempty"     gorm:"uniqueIndex;size:20"`
	CreatedAt   time.Time  `json:"createdAt"   bson:"createdAt"`
	ExpiresAt   *time.Time `json:"expiresAt"   bson:"expiresAt,omitempty"`
	ClickCount  int64      `json:"clickCount"  bson:"clickCount"          gorm:"not null;default:0"`
	Clicks      []Click    `json:"clicks"      bson:"clicks"              gorm:"serializer:json"`
}

// IsExpired ссылка считается истекшей, если expiresAt задан и уже в прошлом.
// Запись при этом не удаляется.
func (s *ShortLink) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.Before(now)
}

// RecentIPs возвращает IP адреса последних n переходов в хронологическом порядке.
func (s *ShortLink) RecentIPs(n int) []string {
	clicks := s.Clicks
	if n >= 0 && len(clicks) > n {
		clicks = clicks[len(clicks)-n:]
	}
	ips := make([]string, 0, len(clicks))
	for _, c := range clicks {
		ips = append(ips, c.IP)
	}
	return ips
}
