package services

import (
	"context"
	"errors"
	"strings"

	"orderhub/models"
	"orderhub/repositories"
	"orderhub/utils"
)

type AuthService struct {
	userRepo       *repositories.UserRepository
	restaurantRepo *repositories.RestaurantRepository
}

func NewAuthService() *AuthService {
	return &AuthService{
		userRepo:       repositories.NewUserRepository(),
		restaurantRepo: repositories.NewRestaurantRepository(),
	}
}

// RegisterRestaurant is the onboarding entry: it creates the restaurant
// profile and its owner account, and logs the owner in.
func (s *AuthService) RegisterRestaurant(ctx context.Context, req models.RegisterRestaurantRequest) (*models.LoginResponse, error) {
	existingUser, _ := s.userRepo.FindByEmail(ctx, req.Email)
	if existingUser != nil {
		return nil, errors.New("email already registered")
	}

	if existing, _ := s.restaurantRepo.FindBySlug(ctx, req.Slug); existing != nil {
		return nil, errors.New("slug already taken")
	}

	restaurant := &models.Restaurant{
		Slug:           strings.ToLower(strings.TrimSpace(req.Slug)),
		Name:           strings.TrimSpace(req.RestaurantName),
		Phone:          req.Phone,
		WhatsAppNumber: req.WhatsAppNumber,
	}
	if err := s.restaurantRepo.Create(ctx, restaurant); err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		RestaurantID: restaurant.ID,
		Email:        req.Email,
		Password:     hashedPassword,
		FullName:     req.FullName,
		Role:         "owner",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(user.ID, user.RestaurantID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{Token: token, User: *user}, nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	valid, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !valid {
		return nil, errors.New("invalid email or password")
	}

	token, err := utils.GenerateToken(user.ID, user.RestaurantID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{Token: token, User: *user}, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}
