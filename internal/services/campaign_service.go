package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"donation-platform/internal/apperr"
	"donation-platform/internal/models"
	"donation-platform/internal/utils"
)

const (
	relatedCampaignLimit    = 3
	relatedDescriptionRunes = 100
	maxPageSize             = 100
)

// CampaignService handles campaign listing, detail and creation
type CampaignService struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewCampaignService creates a new CampaignService
func NewCampaignService(db *gorm.DB, log *zap.Logger) *CampaignService {
	return &CampaignService{db: db, log: log}
}

// Pagination selects a slice of a listing. A zero Page returns everything.
type Pagination struct {
	Page     int
	PageSize int
}

// CampaignPage is a listing together with its totals
type CampaignPage struct {
	Campaigns  []models.CampaignResponse
	Total      int64
	TotalPages int
}

func (s *CampaignService) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Organizer").Preload("CampaignType").Preload("Token")
}

// List returns approved campaigns, newest first
func (s *CampaignService) List(ctx context.Context, p Pagination) (*CampaignPage, error) {
	base := s.db.WithContext(ctx).Model(&models.Campaign{}).Where("approved_by_admin = ?", true)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count campaigns: %w", err)
	}

	query := s.withRelations(base.Session(&gorm.Session{})).Order("created_at DESC").Order("id DESC")

	page := &CampaignPage{Total: total, TotalPages: 1}
	if p.Page != 0 {
		if p.Page < 0 {
			return nil, apperr.Validation("page must be positive")
		}
		size := p.PageSize
		if size <= 0 || size > maxPageSize {
			size = 10
		}
		query = query.Offset((p.Page - 1) * size).Limit(size)
		page.TotalPages = int((total + int64(size) - 1) / int64(size))
	}

	var campaigns []models.Campaign
	if err := query.Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	page.Campaigns = make([]models.CampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		page.Campaigns = append(page.Campaigns, ToCampaignResponse(&campaigns[i]))
	}
	return page, nil
}

// Get returns any campaign by id together with up to three related campaigns
func (s *CampaignService) Get(ctx context.Context, id uint) (*models.CampaignDetailResponse, error) {
	var campaign models.Campaign
	err := s.withRelations(s.db.WithContext(ctx)).First(&campaign, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Campaign not found")
		}
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	related, err := s.related(ctx, &campaign)
	if err != nil {
		return nil, err
	}

	return &models.CampaignDetailResponse{
		Campaign:         ToCampaignResponse(&campaign),
		RelatedCampaigns: related,
	}, nil
}

func (s *CampaignService) related(ctx context.Context, campaign *models.Campaign) ([]models.RelatedCampaign, error) {
	query := s.db.WithContext(ctx).
		Where("approved_by_admin = ? AND status = ? AND id <> ?", true, models.CampaignStatusPublished, campaign.ID)
	if campaign.CampaignTypeID != nil {
		query = query.Where("campaign_type_id = ?", *campaign.CampaignTypeID)
	} else {
		query = query.Where("campaign_type_id IS NULL")
	}

	var campaigns []models.Campaign
	if err := query.Order("RANDOM()").Limit(relatedCampaignLimit).Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("failed to load related campaigns: %w", err)
	}

	related := make([]models.RelatedCampaign, 0, len(campaigns))
	for _, c := range campaigns {
		related = append(related, models.RelatedCampaign{
			ID:          c.ID,
			Title:       c.Title,
			Description: utils.Truncate(c.Description, relatedDescriptionRunes),
			Image:       listingImage(c.Image),
			Progress:    int(c.PercentageCompleted.IntPart()),
		})
	}
	return related, nil
}

// Create stores a new unapproved campaign owned by organizerID
func (s *CampaignService) Create(ctx context.Context, organizerID uint, req *models.CampaignCreateRequest) (*models.CampaignResponse, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return nil, apperr.Validation("title and description are required")
	}
	if req.Goal == nil {
		return nil, apperr.Validation("goal is required")
	}
	goal := decimal.NewFromFloat(*req.Goal).Round(2)
	if goal.IsNegative() {
		return nil, apperr.Validation("goal must not be negative")
	}

	campaign := models.Campaign{
		Title:          title,
		Description:    description,
		Image:          req.Image,
		Goal:           goal,
		CurrentAmount:  decimal.Zero,
		OrganizerID:    organizerID,
		CampaignTypeID: req.CampaignTypeID,
		TokenID:        req.TokenID,
		VideoLink:      req.VideoLink,
		ProjectURL:     req.ProjectURL,
		Status:         models.CampaignStatusNew,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.CampaignTypeID != nil {
			if err := tx.First(&models.CampaignType{}, *req.CampaignTypeID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("Campaign type not found")
				}
				return err
			}
		}
		if req.TokenID != nil {
			if err := tx.First(&models.Token{}, *req.TokenID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("Token not found")
				}
				return err
			}
		}
		if err := tx.Create(&campaign).Error; err != nil {
			return fmt.Errorf("failed to create campaign: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var created models.Campaign
	if err := s.withRelations(s.db.WithContext(ctx)).First(&created, campaign.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload campaign: %w", err)
	}

	s.log.Info("Campaign created",
		zap.Uint("campaign_id", created.ID),
		zap.Uint("organizer_id", organizerID),
	)
	resp := ToCampaignResponse(&created)
	return &resp, nil
}

// ListByOrganizer returns every campaign of the organizer, most recently updated first
func (s *CampaignService) ListByOrganizer(ctx context.Context, organizerID uint) ([]models.CampaignResponse, error) {
	var campaigns []models.Campaign
	err := s.withRelations(s.db.WithContext(ctx)).
		Where("organizer_id = ?", organizerID).
		Order("updated_at DESC").Order("id DESC").
		Find(&campaigns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user campaigns: %w", err)
	}

	result := make([]models.CampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		resp := ToCampaignResponse(&campaigns[i])
		image := listingImage(campaigns[i].Image)
		resp.Image = &image
		result = append(result, resp)
	}
	return result, nil
}

// ToCampaignResponse converts a campaign with its preloaded relations to the API schema
func ToCampaignResponse(c *models.Campaign) models.CampaignResponse {
	resp := models.CampaignResponse{
		ID:                       c.ID,
		Title:                    c.Title,
		Description:              c.Description,
		Image:                    c.Image,
		Goal:                     c.Goal.InexactFloat64(),
		CurrentAmount:            c.CurrentAmount.InexactFloat64(),
		Progress:                 c.PercentageCompleted.InexactFloat64(),
		CampaignType:             c.CampaignType,
		Token:                    c.Token,
		VideoLink:                c.VideoLink,
		ProjectURL:               c.ProjectURL,
		CreatedAt:                formatTime(c.CreatedAt),
		UpdatedAt:                formatTime(c.UpdatedAt),
		ApprovedByAdmin:          c.ApprovedByAdmin,
		OnchainID:                c.OnchainID,
		Status:                   c.Status,
		TransactionHashCreate:    c.TransactionHashCreate,
		TransactionHashWithdrawn: c.TransactionHashWithdrawn,
	}
	if c.Organizer != nil {
		resp.Organizer = &models.OrganizerSummary{
			ID:       c.Organizer.ID,
			Username: c.Organizer.Username,
			Email:    c.Organizer.Email,
		}
	}
	return resp
}

func listingImage(image *string) string {
	return utils.StringOr(image, models.PlaceholderCampaignImage)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
