package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jefftrojan/afritrade-rev/internal/auth"
	"github.com/jefftrojan/afritrade-rev/internal/model"
	"github.com/jefftrojan/afritrade-rev/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Credentials struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

type RegisterBusinessInput struct {
	Credentials
	Location     string
	BusinessType string
	TradeFocus   string
}

type RegisterSupplierInput struct {
	Credentials
	CompanyName       string
	Location          string
	ProductCategories []string
	Capacity          int
}

type RegisterCourierInput struct {
	Credentials
	Location       string
	TransportModes []string
	RegionsCovered []string
}

type AuthService interface {
	RegisterBusiness(ctx context.Context, in RegisterBusinessInput) (*model.User, string, error)
	RegisterSupplier(ctx context.Context, in RegisterSupplierInput) (*model.User, string, error)
	RegisterCourier(ctx context.Context, in RegisterCourierInput) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.Manager
}

func NewAuthService(users repository.UserRepository, tokens *auth.Manager) AuthService {
	return &authService{users: users, tokens: tokens}
}

func (c *Credentials) validate() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(strings.ToLower(c.Email))
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.Email == "" || !strings.Contains(c.Email, "@") {
		return errors.New("a valid email is required")
	}
	if c.Password == "" {
		return errors.New("password is required")
	}
	if c.Password != c.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}

func (s *authService) register(ctx context.Context, u *model.User, password string) (*model.User, string, error) {
	if existing, err := s.users.FindByEmail(ctx, u.Email); err == nil && existing != nil {
		return nil, "", ErrDuplicateEmail
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}
	u.PasswordHash = string(hash)
	if err := s.users.Create(ctx, u); err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Issue(auth.Session{UserID: u.ID, Role: u.Role, Name: u.Name, Email: u.Email})
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *authService) RegisterBusiness(ctx context.Context, in RegisterBusinessInput) (*model.User, string, error) {
	if err := in.validate(); err != nil {
		return nil, "", err
	}
	u := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		Role:         model.RoleBusiness,
		Location:     strings.TrimSpace(in.Location),
		BusinessType: strings.TrimSpace(in.BusinessType),
		TradeFocus:   strings.TrimSpace(in.TradeFocus),
	}
	return s.register(ctx, u, in.Password)
}

func (s *authService) RegisterSupplier(ctx context.Context, in RegisterSupplierInput) (*model.User, string, error) {
	if err := in.validate(); err != nil {
		return nil, "", err
	}
	if in.Capacity < 0 {
		return nil, "", errors.New("capacity must not be negative")
	}
	u := &model.User{
		Name:              in.Name,
		Email:             in.Email,
		Role:              model.RoleSupplier,
		Location:          strings.TrimSpace(in.Location),
		CompanyName:       strings.TrimSpace(in.CompanyName),
		ProductCategories: model.StringList(in.ProductCategories),
		Capacity:          in.Capacity,
	}
	return s.register(ctx, u, in.Password)
}

func (s *authService) RegisterCourier(ctx context.Context, in RegisterCourierInput) (*model.User, string, error) {
	if err := in.validate(); err != nil {
		return nil, "", err
	}
	u := &model.User{
		Name:           in.Name,
		Email:          in.Email,
		Role:           model.RoleCourier,
		Location:       strings.TrimSpace(in.Location),
		TransportModes: model.StringList(in.TransportModes),
		RegionsCovered: model.StringList(in.RegionsCovered),
	}
	return s.register(ctx, u, in.Password)
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(auth.Session{UserID: u.ID, Role: u.Role, Name: u.Name, Email: u.Email})
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}
