package models

import "time"

// PlaceholderCampaignImage is shown for campaigns without an image in listings
const PlaceholderCampaignImage = "https://placehold.co/600x400"

// ---- Request/Response DTOs ----

// LoginRequest is the request body for wallet login
type LoginRequest struct {
	WalletAddress string `json:"wallet_address"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Token         string  `json:"token"`
	Username      string  `json:"username"`
	WalletAddress string  `json:"wallet_address"`
	Image         *string `json:"image"`
	Name          *string `json:"name"`
}

// UserInfoResponse is the caller's profile
type UserInfoResponse struct {
	Name          *string `json:"name"`
	WalletAddress string  `json:"wallet_address"`
	Facebook      *string `json:"facebook"`
	Twitter       *string `json:"twitter"`
	Bio           *string `json:"bio"`
	UserImage     *string `json:"user_image"`
}

// UserUpdateRequest is the body of PUT /user/update
type UserUpdateRequest struct {
	Name      *string `json:"name"`
	Facebook  *string `json:"facebook"`
	Twitter   *string `json:"twitter"`
	Bio       *string `json:"bio"`
	UserImage *string `json:"user_image"`
}

// CampaignCreateRequest is the body of POST /campaigns
type CampaignCreateRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description" binding:"required"`
	Image          *string  `json:"image"`
	Goal           *float64 `json:"goal" binding:"required"`
	CampaignTypeID *uint    `json:"campaign_type_id"`
	TokenID        *uint    `json:"token_id"`
	VideoLink      *string  `json:"video_link"`
	ProjectURL     *string  `json:"project_url"`
}

// OrganizerSummary is the public view of a campaign organizer
type OrganizerSummary struct {
	ID       uint    `json:"id"`
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

// CampaignResponse is the fully denormalized campaign schema
type CampaignResponse struct {
	ID                       uint              `json:"id"`
	Title                    string            `json:"title"`
	Description              string            `json:"description"`
	Image                    *string           `json:"image"`
	Goal                     float64           `json:"goal"`
	CurrentAmount            float64           `json:"current_amount"`
	Progress                 float64           `json:"progress"`
	Organizer                *OrganizerSummary `json:"organizer"`
	CampaignType             *CampaignType     `json:"campaign_type"`
	Token                    *Token            `json:"token"`
	VideoLink                *string           `json:"video_link"`
	ProjectURL               *string           `json:"project_url"`
	CreatedAt                string            `json:"created_at"`
	UpdatedAt                string            `json:"updated_at"`
	ApprovedByAdmin          bool              `json:"approved_by_admin"`
	OnchainID                *int64            `json:"onchain_id"`
	Status                   CampaignStatus    `json:"status"`
	TransactionHashCreate    *string           `json:"transaction_hash_create"`
	TransactionHashWithdrawn *string           `json:"transaction_hash_withdrawn"`
}

// RelatedCampaign is a short card shown next to a campaign detail
type RelatedCampaign struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Progress    int    `json:"progress"`
}

// CampaignDetailResponse is the response of GET /campaigns/:id
type CampaignDetailResponse struct {
	Campaign         CampaignResponse  `json:"campaign"`
	RelatedCampaigns []RelatedCampaign `json:"related_campaigns"`
}

// DonationHistoryEntry is one of the caller's own donations
type DonationHistoryEntry struct {
	CampaignID      uint    `json:"campaign_id"`
	CampaignTitle   string  `json:"campaign_title"`
	CampaignImage   *string `json:"campaign_image"`
	Amount          float64 `json:"amount"`
	Date            string  `json:"date"`
	TransactionHash *string `json:"transaction_hash"`
}

// CampaignDonationEntry is one donation in a campaign's history
type CampaignDonationEntry struct {
	CampaignID      uint    `json:"campaign_id"`
	CampaignTitle   string  `json:"campaign_title"`
	CampaignImage   *string `json:"campaign_image"`
	UserID          uint    `json:"user_id"`
	UserName        *string `json:"user_name"`
	UserUsername    *string `json:"user_username"`
	UserImage       *string `json:"user_image"`
	Amount          float64 `json:"amount"`
	Date            string  `json:"date"`
	TransactionHash string  `json:"transaction_hash"`
}

// TopCampaign is an entry of the top campaigns leaderboard
type TopCampaign struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	Progress    float64        `json:"progress"`
	Status      CampaignStatus `json:"status"`
	Date        string         `json:"date"`
}

// TopDonor is an entry of the top donors leaderboard
type TopDonor struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	TotalDonations string `json:"totalDonations"`
	Initials       string `json:"initials"`
}

// UploadResponse is returned after a file upload
type UploadResponse struct {
	Message  string `json:"message"`
	FileName string `json:"file_name"`
	FileURL  string `json:"file_url"`
}

// DonationRecord is one donation reported by the chain indexer. The donor is
// referenced either by UserID or by WalletAddress.
type DonationRecord struct {
	CampaignID      uint       `json:"campaign_id" binding:"required"`
	UserID          *uint      `json:"user_id"`
	WalletAddress   string     `json:"wallet_address"`
	Amount          float64    `json:"amount" binding:"required"`
	TransactionHash string     `json:"transaction_hash" binding:"required"`
	Date            *time.Time `json:"date"`
}

// RecordDonationsRequest is the body of POST /internal/indexer/donations
type RecordDonationsRequest struct {
	Donations []DonationRecord `json:"donations" binding:"required,dive"`
}

// PublishCampaignRequest is the body of the indexer publish call
type PublishCampaignRequest struct {
	OnchainID       int64  `json:"onchain_id"`
	TransactionHash string `json:"transaction_hash" binding:"required"`
}

// CloseCampaignRequest is the body of the indexer close call
type CloseCampaignRequest struct {
	TransactionHash string `json:"transaction_hash" binding:"required"`
}

// CheckpointRequest is the body of the indexer checkpoint upsert
type CheckpointRequest struct {
	StartAt string  `json:"start_at" binding:"required"`
	Value   *string `json:"value"`
}
