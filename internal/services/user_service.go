package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/seekwell-app/seekwell/internal/auth"
	"github.com/seekwell-app/seekwell/internal/dtos"
	"github.com/seekwell-app/seekwell/internal/models"
)

// UserService covers accounts, profiles, skills and API tokens.
type UserService struct {
	DB       *gorm.DB
	TokenTTL time.Duration
	logger   *slog.Logger
}

func NewUserService(db *gorm.DB, tokenTTL time.Duration) *UserService {
	return &UserService{
		DB:       db,
		TokenTTL: tokenTTL,
		logger:   slog.Default().With("component", "user-service"),
	}
}

// Register creates the account and returns it with a fresh API token.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, "", time.Time{}, err
	}
	if count > 0 {
		return nil, "", time.Time{}, ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &models.User{Email: email, PasswordHash: hash}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, "", time.Time{}, err
	}

	raw, expires, err := s.issueToken(ctx, user.ID, "register")
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, raw, expires, nil
}

// Login verifies credentials and issues a new API token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", time.Time{}, err
	}

	if auth.CheckPassword(user.PasswordHash, password) != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	return s.issueToken(ctx, user.ID, "login")
}

func (s *UserService) issueToken(ctx context.Context, userID uint, label string) (string, time.Time, error) {
	raw, hash, err := auth.GenerateToken()
	if err != nil {
		return "", time.Time{}, err
	}

	expires := time.Now().Add(s.TokenTTL)
	token := &models.APIToken{
		UserID:    userID,
		TokenHash: hash,
		Label:     label,
		ExpiresAt: expires,
	}
	if err := s.DB.WithContext(ctx).Create(token).Error; err != nil {
		return "", time.Time{}, err
	}
	return raw, expires, nil
}

// Get loads a user with profile and skills.
func (s *UserService) Get(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).
		Preload("Profile").
		Preload("Skills.Skill").
		First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateEmail changes the account address, keeping it unique.
func (s *UserService) UpdateEmail(ctx context.Context, userID uint, email string) (*models.User, error) {
	var existing models.User
	err := s.DB.WithContext(ctx).
		Where("email = ? AND id <> ?", email, userID).
		First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	res := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("email", email)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, userID)
}

// UpdateProfile upserts the user's profile from the request.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, req *dtos.ProfileUpdateRequest) (*models.Profile, error) {
	var profile models.Profile
	err := s.DB.WithContext(ctx).Where(models.Profile{UserID: userID}).FirstOrCreate(&profile).Error
	if err != nil {
		return nil, err
	}

	profile.Headline = req.Headline
	profile.Summary = req.Summary
	profile.YearsExperience = req.YearsExperience
	profile.Locations = models.StringList(req.Locations)
	if req.RemotePreference != "" {
		profile.RemotePreference = req.RemotePreference
	}
	profile.MinSalary = req.MinSalary
	profile.MaxSalary = req.MaxSalary
	profile.Currency = req.Currency
	// Profile text changed; the embedding marker is stale until the next
	// parse or reindex touches it.
	profile.EmbeddedAt = nil

	if err := s.DB.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// ReplaceSkills swaps the user's skill set for the given entries. Skill
// names are canonicalized to lowercase and created on first use.
func (s *UserService) ReplaceSkills(ctx context.Context, userID uint, entries []dtos.SkillEntry) ([]models.UserSkill, error) {
	var result []models.UserSkill

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserSkill{}).Error; err != nil {
			return err
		}
		for _, entry := range entries {
			skill, err := firstOrCreateSkill(tx, entry.Name)
			if err != nil {
				return err
			}
			proficiency := entry.Proficiency
			if proficiency == 0 {
				proficiency = 3
			}
			us := models.UserSkill{
				UserID:      userID,
				SkillID:     skill.ID,
				Skill:       *skill,
				Proficiency: proficiency,
				Years:       entry.Years,
			}
			if err := tx.Create(&us).Error; err != nil {
				return err
			}
			result = append(result, us)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateDigestPreferences sets the digest frequency.
func (s *UserService) UpdateDigestPreferences(ctx context.Context, userID uint, frequency string) error {
	res := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("digest_frequency", frequency)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// firstOrCreateSkill resolves a canonical skill row by lowercased name.
func firstOrCreateSkill(tx *gorm.DB, name string) (*models.Skill, error) {
	var skill models.Skill
	canonical := strings.ToLower(strings.TrimSpace(name))
	err := tx.Where(models.Skill{Name: canonical}).FirstOrCreate(&skill).Error
	if err != nil {
		return nil, err
	}
	return &skill, nil
}
