package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jefftrojan/afritrade-rev/internal/auth"
	"github.com/jefftrojan/afritrade-rev/internal/model"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	byEmail map[string]*model.User
	nextID  uint64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*model.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	u.ID = f.nextID
	f.nextID++
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint64) (*model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) SetDB(_ *gorm.DB) {}

func testTokens() *auth.Manager {
	return auth.NewManager("test-secret", time.Hour)
}

func TestRegisterBusinessPasswordMismatch(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testTokens())
	_, _, err := svc.RegisterBusiness(context.Background(), RegisterBusinessInput{
		Credentials: Credentials{
			Name: "Ada", Email: "ada@example.com",
			Password: "secret123", ConfirmPassword: "secret124",
		},
	})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("err=%v, want ErrPasswordMismatch", err)
	}
	if err.Error() != "Passwords don't match" {
		t.Fatalf("message=%q", err.Error())
	}
}

func TestRegisterSupplier(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testTokens())

	u, token, err := svc.RegisterSupplier(context.Background(), RegisterSupplierInput{
		Credentials: Credentials{
			Name: "Fatima", Email: "  Fatima@Sahel.SN ",
			Password: "secret123", ConfirmPassword: "secret123",
		},
		CompanyName:       "Sahel Grains",
		Location:          "Dakar",
		ProductCategories: []string{"grains"},
		Capacity:          2000,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if u.Email != "fatima@sahel.sn" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.Role != model.RoleSupplier || u.Capacity != 2000 {
		t.Fatalf("user=%+v", u)
	}
	if u.PasswordHash == "" || u.PasswordHash == "secret123" {
		t.Fatal("password not hashed")
	}

	sess, err := testTokens().Parse(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if sess.UserID != u.ID || sess.Role != model.RoleSupplier || sess.Email != "fatima@sahel.sn" {
		t.Fatalf("session=%+v", sess)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testTokens())
	in := RegisterCourierInput{
		Credentials: Credentials{
			Name: "Kato", Email: "kato@example.com",
			Password: "secret123", ConfirmPassword: "secret123",
		},
		TransportModes: []string{"truck"},
	}
	if _, _, err := svc.RegisterCourier(context.Background(), in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, err := svc.RegisterCourier(context.Background(), in); !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("err=%v, want ErrDuplicateEmail", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testTokens())
	if _, _, err := svc.RegisterBusiness(context.Background(), RegisterBusinessInput{
		Credentials: Credentials{
			Name: "Ada", Email: "ada@example.com",
			Password: "secret123", ConfirmPassword: "secret123",
		},
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	t.Run("correct password", func(t *testing.T) {
		u, token, err := svc.Login(context.Background(), "Ada@Example.com", "secret123")
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if u.Email != "ada@example.com" || token == "" {
			t.Fatalf("u=%+v token=%q", u, token)
		}
	})
	t.Run("wrong password", func(t *testing.T) {
		if _, _, err := svc.Login(context.Background(), "ada@example.com", "nope"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err=%v, want ErrInvalidCredentials", err)
		}
	})
	t.Run("unknown email", func(t *testing.T) {
		if _, _, err := svc.Login(context.Background(), "ghost@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("err=%v, want ErrInvalidCredentials", err)
		}
	})
}
