package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/starwishteam/starwish/internal/models"
	"github.com/starwishteam/starwish/internal/repository"
	"github.com/starwishteam/starwish/pkg/email"
	jwtutil "github.com/starwishteam/starwish/pkg/jwt"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Fixed user-facing auth errors; handlers surface these verbatim and
// collapse anything else to a generic message.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailInUse         = errors.New("this email is already registered")
	ErrInvalidEmail       = errors.New("please enter a valid email")
	ErrWeakPassword       = errors.New("password should be at least 6 characters")
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const unknownAttr = "Unknown"

// profileFields are the attributes a user may edit one at a time.
var profileFields = map[string]bool{
	"name":   true,
	"gender": true,
	"age":    true,
}

// UserService encapsulates account, session and profile logic.
type UserService struct {
	repo     *repository.UserRepository
	wishRepo *repository.WishRepository
}

func NewUserService(repo *repository.UserRepository, wishRepo *repository.WishRepository) *UserService {
	return &UserService{
		repo:     repo,
		wishRepo: wishRepo,
	}
}

// usernameFromEmail derives the display name from the email local-part.
// Uniqueness is enforced at registration; the ObjectID remains the real key.
func usernameFromEmail(addr string) string {
	if at := strings.Index(addr, "@"); at >= 0 {
		return addr[:at]
	}
	return addr
}

// RegisterUser creates an account from email and password, deriving the
// username and seeding the profile defaults.
func (s *UserService) RegisterUser(ctx context.Context, emailAddr, password string) (*models.User, error) {
	logrus.Info("Registering new user")

	if !emailRegex.MatchString(emailAddr) {
		logrus.WithField("email", emailAddr).Warn("Invalid email format during registration")
		return nil, ErrInvalidEmail
	}
	if len(password) < 6 {
		return nil, ErrWeakPassword
	}

	if existing, _ := s.repo.GetUserByEmail(ctx, emailAddr); existing != nil {
		logrus.WithField("email", emailAddr).Warn("Email already in use")
		return nil, ErrEmailInUse
	}

	username := usernameFromEmail(emailAddr)
	if existing, _ := s.repo.GetUserByUsername(ctx, username); existing != nil {
		// Same local-part under a different domain would collide on the
		// display name, which the rest of the app leans on.
		logrus.WithField("username", username).Warn("Username already taken")
		return nil, ErrEmailInUse
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:          emailAddr,
		Username:       username,
		HashedPassword: string(hashedPwd),
		Role:           "user",
		Name:           unknownAttr,
		Gender:         unknownAttr,
		Age:            unknownAttr,
		SocialLinks:    []string{},
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		logrus.WithError(err).Error("User registration failed")
		return nil, fmt.Errorf("failed to register user: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"userID":   created.ID.Hex(),
		"username": created.Username,
	}).Info("User registered successfully")
	return created, nil
}

// AuthenticateUser verifies credentials and returns the user.
func (s *UserService) AuthenticateUser(ctx context.Context, emailAddr, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		logrus.WithField("email", emailAddr).Warn("User not found")
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logrus.WithField("email", emailAddr).Warn("Invalid credentials")
		return nil, ErrInvalidCredentials
	}

	logrus.WithField("userID", user.ID.Hex()).Info("User authenticated successfully")
	return user, nil
}

// RequestPasswordReset emails a reset link valid for one hour.
func (s *UserService) RequestPasswordReset(ctx context.Context, userEmail string) error {
	user, err := s.repo.GetUserByEmail(ctx, userEmail)
	if err != nil {
		return fmt.Errorf("no account found with this email")
	}

	resetToken := uuid.NewString()
	update := map[string]interface{}{
		"reset_token":     resetToken,
		"reset_token_exp": time.Now().Add(1 * time.Hour),
	}
	if _, err := s.repo.UpdateUser(ctx, user.ID, update); err != nil {
		return fmt.Errorf("failed to save reset token")
	}

	resetLink := fmt.Sprintf("http://localhost:8080/users/reset-password?token=%s", resetToken)
	body := fmt.Sprintf("Click the link below to reset your password:\n\n%s", resetLink)
	if err := email.SendEmail(user.Email, "Reset Your Password", body); err != nil {
		return fmt.Errorf("failed to send password reset email: %v", err)
	}

	logrus.Infof("Password reset email sent to %s", userEmail)
	return nil
}

// ResetPassword sets a new password given a valid reset token.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.repo.GetUserByResetToken(ctx, token)
	if err != nil {
		return fmt.Errorf("invalid or expired reset token")
	}
	if time.Now().After(user.ResetTokenExp) {
		return fmt.Errorf("reset token has expired")
	}
	if len(newPassword) < 6 {
		return ErrWeakPassword
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %v", err)
	}

	update := map[string]interface{}{
		"hashed_password": string(hashedPwd),
		"reset_token":     "",
		"reset_token_exp": time.Time{},
	}
	if _, err := s.repo.UpdateUser(ctx, user.ID, update); err != nil {
		return fmt.Errorf("failed to update password: %v", err)
	}
	return nil
}

// GetUser retrieves a user by id, backfilling profile defaults for accounts
// created before the profile fields existed.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %v", err)
	}

	user, err := s.repo.GetUserByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return s.ensureProfileDefaults(ctx, user)
}

func (s *UserService) ensureProfileDefaults(ctx context.Context, user *models.User) (*models.User, error) {
	updates := map[string]interface{}{}
	if user.Name == "" {
		updates["name"] = unknownAttr
	}
	if user.Gender == "" {
		updates["gender"] = unknownAttr
	}
	if user.Age == "" {
		updates["age"] = unknownAttr
	}
	if user.SocialLinks == nil {
		updates["social_links"] = []string{}
	}
	if len(updates) == 0 {
		return user, nil
	}
	return s.repo.UpdateUser(ctx, user.ID, updates)
}

// UpdateProfileField edits one editable attribute (name, gender or age).
func (s *UserService) UpdateProfileField(ctx context.Context, userID, field, value string) (*models.User, error) {
	if !profileFields[field] {
		return nil, fmt.Errorf("field %q is not editable", field)
	}
	if strings.TrimSpace(value) == "" {
		return nil, fmt.Errorf("value must not be empty")
	}

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %v", err)
	}
	return s.repo.UpdateUser(ctx, objID, map[string]interface{}{field: value})
}

// AddSocialLink appends one link to the user's profile.
func (s *UserService) AddSocialLink(ctx context.Context, userID, link string) (*models.User, error) {
	if strings.TrimSpace(link) == "" {
		return nil, fmt.Errorf("link must not be empty")
	}

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %v", err)
	}

	user, err := s.repo.GetUserByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %v", err)
	}

	links := append(user.SocialLinks, link)
	return s.repo.UpdateUser(ctx, objID, map[string]interface{}{"social_links": links})
}

// rankBadge maps a fulfillment count to the profile badge.
func rankBadge(fulfilledCount int) string {
	switch {
	case fulfilledCount == 0:
		return "turtle"
	case fulfilledCount < 5:
		return "rabbit"
	case fulfilledCount < 10:
		return "horse"
	default:
		return "lion"
	}
}

// ProfileView is the self-profile payload: the account plus its wishes and
// derived rank badge.
type ProfileView struct {
	User            *models.User  `json:"user"`
	Rank            string        `json:"rank"`
	CreatedWishes   []models.Wish `json:"created_wishes"`
	FulfilledWishes []models.Wish `json:"fulfilled_wishes"`
}

// GetProfile assembles the signed-in user's profile view.
func (s *UserService) GetProfile(ctx context.Context, claims *jwtutil.Claims) (*ProfileView, error) {
	user, err := s.GetUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	created, err := s.wishRepo.GetWishesByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	fulfilled, err := s.wishRepo.GetWishesByFulfiller(ctx, user.Username)
	if err != nil {
		return nil, err
	}

	return &ProfileView{
		User:            user,
		Rank:            rankBadge(len(fulfilled)),
		CreatedWishes:   created,
		FulfilledWishes: fulfilled,
	}, nil
}

// PublicProfileView is the read-only profile shown for a display name:
// attributes, the user's non-anonymous wishes and everything they fulfilled.
type PublicProfileView struct {
	User            models.PublicUser `json:"user"`
	Rank            string            `json:"rank"`
	CreatedWishes   []models.Wish     `json:"created_wishes"`
	FulfilledWishes []models.Wish     `json:"fulfilled_wishes"`
}

// GetPublicProfile looks a profile up by display name. Anonymous wishes
// never surface here because they carry the "Anonymous" name instead of the
// author's.
func (s *UserService) GetPublicProfile(ctx context.Context, username string) (*PublicProfileView, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("user not found")
	}

	created, err := s.wishRepo.GetWishesByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	fulfilled, err := s.wishRepo.GetWishesByFulfiller(ctx, username)
	if err != nil {
		return nil, err
	}

	return &PublicProfileView{
		User: models.PublicUser{
			Username:    user.Username,
			Name:        user.Name,
			Gender:      user.Gender,
			Age:         user.Age,
			SocialLinks: user.SocialLinks,
		},
		Rank:            rankBadge(len(fulfilled)),
		CreatedWishes:   created,
		FulfilledWishes: fulfilled,
	}, nil
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.repo.GetAllUsers(ctx)
}
