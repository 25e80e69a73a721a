package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/devon/hotel-listing-api/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email     string
	password  string
	firstName string
	lastName  string
	roles     []string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:     fmt.Sprintf("user_%s@example.com", uuid.New().String()[:8]),
		password:  "testpassword123",
		firstName: "Test",
		lastName:  "User",
		roles:     []string{domain.DefaultRole},
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithRoles sets the role names
func (b *UserBuilder) WithRoles(roles ...string) *UserBuilder {
	b.roles = roles
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		FirstName:    b.firstName,
		LastName:     b.lastName,
		Roles:        datatypes.NewJSONSlice(b.roles),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// CountryBuilder creates test countries
type CountryBuilder struct {
	name      string
	shortName string
}

func NewCountryBuilder() *CountryBuilder {
	return &CountryBuilder{name: "Jamaica", shortName: "JM"}
}

func (b *CountryBuilder) WithName(name, shortName string) *CountryBuilder {
	b.name = name
	b.shortName = shortName
	return b
}

func (b *CountryBuilder) Build(t *testing.T, db *gorm.DB) *domain.Country {
	t.Helper()

	country := &domain.Country{Name: b.name, ShortName: b.shortName}
	if err := db.Create(country).Error; err != nil {
		t.Fatalf("failed to create country: %v", err)
	}
	return country
}
