package auth

import (
	"context"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hitarthkothari9641-coder/vastu/internal/models"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/apperr"
	"github.com/hitarthkothari9641-coder/vastu/internal/pkg/constants"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Service struct {
	DB *gorm.DB
}

type RegisterInput struct {
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	FullName    string   `json:"full_name"`
	Phone       *string  `json:"phone"`
	Role        string   `json:"role"`
	CompanyName string   `json:"company_name"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Services    []string `json:"services"`
}

// Register creates a user account and, for the company role, the company
// profile plus its service links in the same transaction. Companies start
// unverified and invisible to listings until an admin approves them.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, *models.Company, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if !emailPattern.MatchString(email) {
		return nil, nil, apperr.New(apperr.Validation, "Invalid email format")
	}
	if len(in.Password) < 8 {
		return nil, nil, apperr.New(apperr.Validation, "Password must be at least 8 characters")
	}
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		return nil, nil, apperr.New(apperr.Validation, "Full name is required")
	}
	role := in.Role
	if role == "" {
		role = constants.RoleUser
	}
	if role != constants.RoleUser && role != constants.RoleCompany {
		return nil, nil, apperr.New(apperr.Validation, "Role must be user or company")
	}
	if role == constants.RoleCompany && strings.TrimSpace(in.CompanyName) == "" {
		return nil, nil, apperr.New(apperr.Validation, "Company name is required")
	}

	var existing models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, nil, apperr.New(apperr.Conflict, "Email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 10)
	if err != nil {
		return nil, nil, apperr.Wrap(apperr.Internal, "Failed to hash password", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
		Phone:        in.Phone,
		Role:         role,
	}
	var company *models.Company

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to create user", err)
		}
		if role != constants.RoleCompany {
			return nil
		}

		company = &models.Company{
			UserID:             user.UserID,
			Name:               strings.TrimSpace(in.CompanyName),
			City:               in.City,
			State:              in.State,
			VerificationStatus: models.VerificationPending,
			IsActive:           true,
		}
		if err := tx.Create(company).Error; err != nil {
			return apperr.Wrap(apperr.Internal, "Failed to create company profile", err)
		}
		if len(in.Services) > 0 {
			var services []models.Service
			if err := tx.Where("name IN ?", in.Services).Find(&services).Error; err != nil {
				return apperr.Wrap(apperr.Internal, "Failed to resolve services", err)
			}
			if len(services) > 0 {
				if err := tx.Model(company).Association("Services").Append(&services); err != nil {
					return apperr.Wrap(apperr.Internal, "Failed to link services", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return user, company, nil
}

// Login verifies credentials. Suspended accounts are refused outright so a
// valid password on a disabled account still fails.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, *models.Company, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, apperr.New(apperr.Unauthorized, "Invalid email or password")
		}
		return nil, nil, apperr.Wrap(apperr.Internal, "Failed to load user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apperr.New(apperr.Unauthorized, "Invalid email or password")
	}
	if !user.IsActive {
		return nil, nil, apperr.New(apperr.Forbidden, "Account is suspended")
	}

	now := time.Now().UTC()
	user.LastLogin = &now
	if err := s.DB.WithContext(ctx).Model(&user).Update("last_login", now).Error; err != nil {
		return nil, nil, apperr.Wrap(apperr.Internal, "Failed to record login", err)
	}

	var company *models.Company
	if user.Role == constants.RoleCompany {
		var c models.Company
		if err := s.DB.WithContext(ctx).Where("user_id = ?", user.UserID).First(&c).Error; err == nil {
			company = &c
		}
	}
	return &user, company, nil
}
