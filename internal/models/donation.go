package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation records an amount a user gave to a campaign. The triple
// (campaign, user, transaction hash) is unique so an on-chain transfer
// cannot be recorded twice.
type Donation struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	CampaignID      uint            `gorm:"not null;uniqueIndex:idx_donation_campaign_user_tx,priority:1" json:"campaign_id"`
	Campaign        *Campaign       `gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE" json:"campaign,omitempty"`
	UserID          uint            `gorm:"not null;index;uniqueIndex:idx_donation_campaign_user_tx,priority:2" json:"user_id"`
	User            *User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Amount          decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"amount"`
	Date            time.Time       `gorm:"autoCreateTime;index" json:"date"`
	TransactionHash *string         `gorm:"size:255;uniqueIndex:idx_donation_campaign_user_tx,priority:3" json:"transaction_hash"`
}

func (Donation) TableName() string {
	return "donations"
}

// DonationNewestFirst is the default ordering for donation listings
const DonationNewestFirst = "donations.date DESC, donations.id DESC"
