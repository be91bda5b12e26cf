package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AnuragDayal94/role-based-task-manager/auth"
	"github.com/AnuragDayal94/role-based-task-manager/logging"
	"github.com/AnuragDayal94/role-based-task-manager/models"
	"github.com/AnuragDayal94/role-based-task-manager/utils"
)

type UserService struct {
	users      UserRepository
	jwtService *JWTService
}

func NewUserService(users UserRepository, jwtService *JWTService) *UserService {
	return &UserService{
		users:      users,
		jwtService: jwtService,
	}
}

// GetAllUsers returns every account, secrets stripped. Admin only.
func (s *UserService) GetAllUsers(ctx context.Context, caller models.User) ([]models.User, error) {
	if !auth.Allow(caller, auth.ActionListUsers, primitive.NilObjectID) {
		return nil, ErrForbidden
	}

	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %v", err)
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

// CreateUser registers a new account on behalf of an admin. Role defaults to
// "user" when omitted; an admin may mint another admin.
func (s *UserService) CreateUser(ctx context.Context, caller models.User, name, email, password string, role models.Role) (models.User, error) {
	if !auth.Allow(caller, auth.ActionCreateUser, primitive.NilObjectID) {
		return models.User{}, ErrForbidden
	}
	if name == "" || email == "" || password == "" {
		return models.User{}, ErrMissingUserFields
	}
	if role == "" {
		role = models.RoleUser
	}
	if !role.IsValid() {
		return models.User{}, ErrInvalidRole
	}

	// Check-then-create is racy; the unique index on email is what actually
	// guarantees uniqueness, the duplicate-key branch below covers the race.
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return models.User{}, ErrUserExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, fmt.Errorf("failed to check existing user: %v", err)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     role,
	}
	if err := s.users.Insert(ctx, &user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrUserExists
		}
		return models.User{}, fmt.Errorf("failed to create user: %v", err)
	}

	logging.Logger.Infof("User %s created with role %s", user.Email, user.Role)
	user.Password = ""
	return user, nil
}

// DeleteUser removes an account. Admin only, self-delete forbidden. Tasks
// assigned to or created by the deleted user are left untouched.
func (s *UserService) DeleteUser(ctx context.Context, caller models.User, id primitive.ObjectID) error {
	if !auth.Allow(caller, auth.ActionDeleteUser, id) {
		if caller.IsAdmin() && caller.ID == id {
			return ErrSelfDelete
		}
		return ErrForbidden
	}

	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to fetch user: %v", err)
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %v", err)
	}
	logging.Logger.Infof("User %s deleted by %s", id.Hex(), caller.ID.Hex())
	return nil
}

// Login verifies the credentials and issues a token. Unknown email and wrong
// password fail the same way so accounts cannot be enumerated.
func (s *UserService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	if email == "" || password == "" {
		return models.User{}, "", ErrMissingCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", fmt.Errorf("failed to fetch user: %v", err)
	}

	if !utils.CheckPassword(password, user.Password) {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateAuthToken(user.ID.Hex(), string(user.Role))
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to generate token: %v", err)
	}

	logging.Logger.Infof("User %s logged in", user.Email)
	user.Password = ""
	return user, token, nil
}

// EnsureAdmin creates the bootstrap admin account if no admin exists yet.
// With no password configured a random one is generated and logged once.
func (s *UserService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	count, err := s.users.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to count admins: %v", err)
	}
	if count > 0 {
		return nil
	}

	if name == "" {
		name = "admin"
	}
	if email == "" {
		email = "admin@localhost"
	}
	if password == "" {
		password = utils.GenerateRandomPassword()
		logging.Logger.Warnf("ADMIN_PASSWORD not set, generated admin password: %s", password)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	if err := s.users.Insert(ctx, &admin); err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %v", err)
	}
	logging.Logger.Infof("Bootstrap admin %s created", email)
	return nil
}
