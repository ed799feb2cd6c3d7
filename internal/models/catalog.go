package models

// CampaignType is a named campaign category
type CampaignType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`
}

func (CampaignType) TableName() string {
	return "campaign_types"
}

// Token describes the asset a campaign collects donations in
type Token struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:255;not null" json:"name"`
	Symbol  string `gorm:"size:50;not null" json:"symbol"`
	Address string `gorm:"size:255;not null" json:"address"`
	Decimal int    `gorm:"column:decimal;not null;default:0" json:"decimal"`
}

func (Token) TableName() string {
	return "tokens"
}
