package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CampaignStatus string

const (
	CampaignStatusNew       CampaignStatus = "NEW"
	CampaignStatusPending   CampaignStatus = "PENDING"
	CampaignStatusPublished CampaignStatus = "PUBLISHED"
	CampaignStatusClosed    CampaignStatus = "CLOSED"
)

var campaignTransitions = map[CampaignStatus][]CampaignStatus{
	CampaignStatusNew:       {CampaignStatusPending, CampaignStatusPublished},
	CampaignStatusPending:   {CampaignStatusPublished},
	CampaignStatusPublished: {CampaignStatusClosed},
}

// CanTransitionTo reports whether a campaign in status s may move to next
func (s CampaignStatus) CanTransitionTo(next CampaignStatus) bool {
	for _, allowed := range campaignTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Campaign is a fundraising campaign owned by its organizer
type Campaign struct {
	ID                       uint            `gorm:"primaryKey" json:"id"`
	Title                    string          `gorm:"size:255;not null" json:"title"`
	Description              string          `gorm:"type:text;not null" json:"description"`
	Image                    *string         `gorm:"size:500;default:https://placehold.co/150x150" json:"image"`
	Goal                     decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"goal"`
	CurrentAmount            decimal.Decimal `gorm:"type:decimal(20,2);not null;default:0" json:"current_amount"`
	PercentageCompleted      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"percentage_completed"`
	OrganizerID              uint            `gorm:"not null;index" json:"organizer_id"`
	Organizer                *User           `gorm:"foreignKey:OrganizerID;constraint:OnDelete:CASCADE" json:"organizer,omitempty"`
	CampaignTypeID           *uint           `gorm:"index" json:"campaign_type_id"`
	CampaignType             *CampaignType   `gorm:"foreignKey:CampaignTypeID;constraint:OnDelete:CASCADE" json:"campaign_type,omitempty"`
	TokenID                  *uint           `gorm:"index" json:"token_id"`
	Token                    *Token          `gorm:"foreignKey:TokenID;constraint:OnDelete:CASCADE" json:"token,omitempty"`
	VideoLink                *string         `gorm:"size:500" json:"video_link"`
	ProjectURL               *string         `gorm:"size:500" json:"project_url"`
	ApprovedByAdmin          bool            `gorm:"not null;default:false;index" json:"approved_by_admin"`
	OnchainID                *int64          `json:"onchain_id"`
	Status                   CampaignStatus  `gorm:"size:20;not null;default:NEW;index" json:"status"`
	TransactionHashCreate    *string         `gorm:"size:255" json:"transaction_hash_create"`
	TransactionHashWithdrawn *string         `gorm:"size:255" json:"transaction_hash_withdrawn"`
	CreatedAt                time.Time       `json:"created_at"`
	UpdatedAt                time.Time       `json:"updated_at"`
}

func (Campaign) TableName() string {
	return "campaigns"
}

var hundred = decimal.NewFromInt(100)

// RefreshProgress recomputes PercentageCompleted from CurrentAmount and Goal.
// A non-positive goal leaves the stored percentage untouched.
func (c *Campaign) RefreshProgress() {
	if !c.Goal.IsPositive() {
		return
	}
	c.PercentageCompleted = c.CurrentAmount.Div(c.Goal).Mul(hundred).Round(2)
}

// BeforeSave keeps PercentageCompleted consistent with the amounts being written
func (c *Campaign) BeforeSave(tx *gorm.DB) error {
	c.RefreshProgress()
	return nil
}
