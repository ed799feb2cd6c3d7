package models

import "time"

// DefaultCheckpointKey is the key used by the on-chain crawler
const DefaultCheckpointKey = "crawl_onchain"

// CrawlCheckpoint tracks the cursor of the external chain indexer
type CrawlCheckpoint struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"size:255;not null;uniqueIndex;default:crawl_onchain" json:"key"`
	StartAt   string    `gorm:"size:255;not null" json:"start_at"`
	Value     *string   `gorm:"size:255" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CrawlCheckpoint) TableName() string {
	return "crawl_checkpoints"
}

// All returns every model managed by AutoMigrate, parents first
func All() []interface{} {
	return []interface{}{
		&User{},
		&CampaignType{},
		&Token{},
		&Campaign{},
		&Donation{},
		&CrawlCheckpoint{},
	}
}
