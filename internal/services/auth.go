package services

import (
	"errors"
	"strconv"
	"time"

	"github.com/Bithika-Jain/Project-Exhibition/internal/config"
	"github.com/Bithika-Jain/Project-Exhibition/internal/models"
	"github.com/Bithika-Jain/Project-Exhibition/internal/utils"
	"github.com/Bithika-Jain/Project-Exhibition/pkg/response"
	"gorm.io/gorm"
)

type AuthService struct {
	db          *gorm.DB
	ldapService *LDAPService
	jwtConfig   *config.JWTConfig
}

func NewAuthService(db *gorm.DB, ldapCfg *config.LDAPConfig, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{
		db:          db,
		ldapService: NewLDAPService(ldapCfg),
		jwtConfig:   jwtCfg,
	}
}

type SignupRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      string `json:"role" binding:"required,oneof=student faculty"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	// Student fields
	RollNumber string `json:"roll_number"`
	Course     string `json:"course"`
	// Faculty fields
	Department string `json:"department"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	AuthType string `json:"auth_type"` // local, ldap
}

type LoginResponse struct {
	Token    string       `json:"token"`
	User     *models.User `json:"user"`
	Role     string       `json:"role"`
	ExpireAt time.Time    `json:"expire_at"`
}

// CurrentUser is the /auth/me payload: the account plus whichever role
// profiles are attached to it.
type CurrentUser struct {
	User      *models.User      `json:"user"`
	Role      string            `json:"role"`
	Student   *models.Student   `json:"student,omitempty"`
	Faculty   *models.Faculty   `json:"faculty,omitempty"`
	Committee *models.Committee `json:"committee,omitempty"`
}

// Signup creates an account with exactly one role profile. The account
// and profile are written in one transaction so a failed profile insert
// leaves no orphan account behind.
func (s *AuthService) Signup(req *SignupRequest) (*models.User, error) {
	var count int64
	s.db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count)
	if count > 0 {
		return nil, response.NewBadRequest("username already taken")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:  req.Username,
		Password:  hash,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		AuthType:  "local",
		IsActive:  true,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		switch req.Role {
		case "student":
			rollNumber := req.RollNumber
			if rollNumber == "" {
				rollNumber = generatedRollNumber(user.ID)
			}
			course := req.Course
			if course == "" {
				course = "Unknown"
			}
			var dup int64
			tx.Model(&models.Student{}).Where("roll_number = ?", rollNumber).Count(&dup)
			if dup > 0 {
				return response.NewBadRequest("roll number already registered")
			}
			return tx.Create(&models.Student{
				UserID:     user.ID,
				RollNumber: rollNumber,
				Course:     course,
			}).Error
		case "faculty":
			department := req.Department
			if department == "" {
				department = "General"
			}
			return tx.Create(&models.Faculty{
				UserID:     user.ID,
				Department: department,
			}).Error
		default:
			return response.NewBadRequest("invalid role")
		}
	}); err != nil {
		return nil, err
	}

	return &user, nil
}

// Login authenticates a user and returns a signed JWT.
func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	var user *models.User
	var err error

	if req.AuthType == "" {
		req.AuthType = "local"
	}

	switch req.AuthType {
	case "local":
		user, err = s.localAuth(req.Username, req.Password)
	case "ldap":
		user, err = s.ldapAuth(req.Username, req.Password)
	default:
		return nil, response.NewBadRequest("invalid auth type")
	}

	if err != nil {
		return nil, err
	}

	role := roleForUser(s.db, user)
	token, err := utils.GenerateToken(user.ID, user.Username, role, s.jwtConfig.ExpireHour)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	s.db.Save(user)

	return &LoginResponse{
		Token:    token,
		User:     user,
		Role:     role,
		ExpireAt: now.Add(time.Duration(s.jwtConfig.ExpireHour) * time.Hour),
	}, nil
}

func (s *AuthService) localAuth(username, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ? AND auth_type = ?", username, "local").First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("invalid username or password")
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, response.NewUnauthorized("user is disabled")
	}

	if !utils.CheckPassword(password, user.Password) {
		return nil, response.NewUnauthorized("invalid username or password")
	}

	return &user, nil
}

// ldapAuth authenticates against the institutional directory. A first
// login provisions the account with a faculty profile using the
// directory's department attribute.
func (s *AuthService) ldapAuth(username, password string) (*models.User, error) {
	ldapUser, err := s.ldapService.Authenticate(username, password)
	if err != nil {
		return nil, response.NewUnauthorized(err.Error())
	}

	var user models.User
	err = s.db.Where("username = ? AND auth_type = ?", ldapUser.Username, "ldap").First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Username:  ldapUser.Username,
			Email:     ldapUser.Email,
			FirstName: ldapUser.DisplayName,
			AuthType:  "ldap",
			IsActive:  true,
		}
		department := ldapUser.Department
		if department == "" {
			department = "General"
		}
		if err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			return tx.Create(&models.Faculty{
				UserID:     user.ID,
				Department: department,
			}).Error
		}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, response.NewUnauthorized("user is disabled")
	}

	// Refresh contact info from the directory
	user.Email = ldapUser.Email
	s.db.Save(&user)

	return &user, nil
}

// GetCurrentUser returns the account and its attached role profiles.
func (s *AuthService) GetCurrentUser(userID uint) (*CurrentUser, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	current := &CurrentUser{
		User: &user,
		Role: roleForUser(s.db, &user),
	}

	if student, err := studentForUser(s.db, user.ID); err == nil {
		current.Student = student
	}
	if faculty, err := facultyForUser(s.db, user.ID); err == nil {
		current.Faculty = faculty
	}
	if committee, err := committeeForUser(s.db, user.ID); err == nil {
		current.Committee = committee
	}

	return current, nil
}

func generatedRollNumber(userID uint) string {
	return "TEMP_" + strconv.FormatUint(uint64(userID), 10)
}
