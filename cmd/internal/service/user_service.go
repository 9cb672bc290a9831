package service

import (
	"errors"

	"noteshare/cmd/internal/contract"
	"noteshare/cmd/internal/domain/entity"
	"noteshare/cmd/internal/domain/sqlite/repository"
	"noteshare/cmd/internal/utils"
	"noteshare/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type UserRepository interface {
	FindByID(id int64) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	Create(user *entity.User) error
}

// TokenIssuer mints session tokens for authenticated users.
type TokenIssuer interface {
	Issue(data utils.TokenData) (string, error)
}

type DefaultUserService struct {
	UserRepo UserRepository
	NoteRepo NoteRepository
	Tokens   TokenIssuer
	Validate *validator.Validate
}

func NewUserService(
	userRepo UserRepository,
	noteRepo NoteRepository,
	tokens TokenIssuer,
	validate *validator.Validate,
) *DefaultUserService {
	return &DefaultUserService{
		UserRepo: userRepo,
		NoteRepo: noteRepo,
		Tokens:   tokens,
		Validate: validate,
	}
}

func (u *DefaultUserService) Register(req *contract.RegisterRequest) (*contract.AuthResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := u.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Errorf("failed to hash password: %v", err)
		return nil, apierror.InternalServerError
	}

	user := &entity.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		College:      req.College,
		CreatedAt:    utils.NowUTC(),
	}

	// The unique index decides; no read-then-insert window.
	if err = u.UserRepo.Create(user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apierror.DuplicateEmailError
		}
		log.Errorf("failed to create user: %v", err)
		return nil, apierror.InternalServerError
	}

	return u.authenticate(user)
}

// Login answers InvalidCredentials for both unknown emails and wrong
// passwords, spending a bcrypt comparison either way.
func (u *DefaultUserService) Login(req *contract.LoginRequest) (*contract.AuthResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := u.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	user, err := u.UserRepo.FindByEmail(req.Email)
	if err != nil {
		log.Errorf("failed to fetch user by email: %v", err)
		return nil, apierror.InternalServerError
	}

	var hash string
	if user != nil {
		hash = user.PasswordHash
	}

	if !utils.CheckPassword(hash, req.Password) {
		return nil, apierror.InvalidCredentialsError
	}
	return u.authenticate(user)
}

func (u *DefaultUserService) GetProfile(actor *utils.TokenData) (*contract.ProfileResponse, apierror.ErrorResponse) {
	user, err := u.UserRepo.FindByID(actor.UserID)
	if err != nil {
		log.Errorf("failed to fetch user %d: %v", actor.UserID, err)
		return nil, apierror.InternalServerError
	}

	if user == nil {
		return nil, apierror.UserNotFoundError
	}

	notes, err := u.NoteRepo.FindStats(&entity.NoteQuery{OwnerID: user.ID, Sort: entity.SortNewest})
	if err != nil {
		log.Errorf("failed to fetch notes of user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}

	return &contract.ProfileResponse{
		User:  toUserResponse(user, true),
		Notes: toNoteResponses(notes),
	}, nil
}

func (u *DefaultUserService) authenticate(user *entity.User) (*contract.AuthResponse, apierror.ErrorResponse) {
	token, err := u.Tokens.Issue(utils.TokenData{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	})
	if err != nil {
		log.Errorf("failed to issue token for user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}

	return &contract.AuthResponse{
		Token: token,
		User:  toUserResponse(user, false),
	}, nil
}

func toUserResponse(user *entity.User, withCreatedAt bool) *contract.UserResponse {
	resp := &contract.UserResponse{
		ID:      user.ID,
		Email:   user.Email,
		Name:    user.Name,
		College: user.College,
	}

	if withCreatedAt {
		resp.CreatedAt = utils.FormatEpoch(user.CreatedAt)
	}
	return resp
}
