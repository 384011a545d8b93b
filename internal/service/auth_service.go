package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/chronotes/chronotes/internal/codestore"
	"github.com/chronotes/chronotes/internal/model"
	appErr "github.com/chronotes/chronotes/internal/pkg/errors"
	"github.com/chronotes/chronotes/internal/pkg/jwt"
	"github.com/chronotes/chronotes/internal/pkg/password"
	"github.com/chronotes/chronotes/internal/pkg/timeutil"
)

const (
	codeLength = 6
	codeTTL    = 5 * time.Minute
)

// UserDirectory is the keyed store behind user records. Insert and
// Update report rows affected so callers can tell a silent no-op from a
// write.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	Insert(ctx context.Context, user *model.User) (int64, error)
	Update(ctx context.Context, user *model.User) (int64, error)
}

// AuthResult is the payload every successful login or registration
// returns alongside nothing else; the token is the only session state.
type AuthResult struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
}

// AuthService owns the auth lifecycle for an email address:
// unregistered, code sent, registered. It is the only writer of user
// and verification-code state.
type AuthService struct {
	users   UserDirectory
	codes   codestore.Store
	sender  EmailSender
	issuer  *jwt.Issuer
	genCode func() string
}

func NewAuthService(users UserDirectory, codes codestore.Store, sender EmailSender, issuer *jwt.Issuer) *AuthService {
	return &AuthService{
		users:   users,
		codes:   codes,
		sender:  sender,
		issuer:  issuer,
		genCode: generateCode,
	}
}

func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, appErr.ErrUserNotFound
		}
		return nil, err
	}
	if !password.Verify(user.PasswordHash, plainPassword) {
		return nil, appErr.ErrInvalidPassword
	}
	if user.Status != model.UserStatusEnabled {
		return nil, appErr.ErrAccountDisabled
	}
	token, err := s.issuer.Issue(user.Email)
	if err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Info("user logged in", zap.String("email", user.Email))
	return s.authResult(user, token), nil
}

func (s *AuthService) Register(ctx context.Context, email, code, plainPassword string) (*AuthResult, error) {
	// uniqueness is re-checked here even though send-code already did;
	// a register racing a send must not slip through
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, appErr.ErrEmailTaken
	} else if !appErr.IsNotFound(err) {
		return nil, err
	}

	stored, err := s.codes.Get(ctx, email)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, appErr.ErrInvalidCode
		}
		return nil, err
	}
	// exact match, no trimming or case folding
	if stored != code {
		return nil, appErr.ErrInvalidCode
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	user := &model.User{
		ID:           newID(),
		Email:        email,
		PasswordHash: hash,
		Username:     strings.Split(email, "@")[0],
		Status:       model.UserStatusEnabled,
		Ctime:        now,
		Mtime:        now,
	}
	affected, err := s.users.Insert(ctx, user)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// code stays in the store so the user can retry
		return nil, appErr.ErrRegisterFailed
	}

	if err := s.codes.Del(ctx, email); err != nil {
		logutil.GetLogger(ctx).Error("delete used verification code failed", zap.String("email", email), zap.Error(err))
	}
	token, err := s.issuer.Issue(user.Email)
	if err != nil {
		return nil, err
	}
	logutil.GetLogger(ctx).Info("user registered", zap.String("email", user.Email))
	return s.authResult(user, token), nil
}

func (s *AuthService) SendVerificationCode(ctx context.Context, email string) error {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return appErr.ErrEmailTaken
	} else if !appErr.IsNotFound(err) {
		return err
	}

	code := s.genCode()
	// unconditional overwrite: a new send invalidates the old code and
	// restarts its 5-minute window
	if err := s.codes.Put(ctx, email, code, codeTTL); err != nil {
		return err
	}
	if err := s.sender.SendVerificationCode(email, code); err != nil {
		logutil.GetLogger(ctx).Error("send verification code failed", zap.String("email", email), zap.Error(err))
		return fmt.Errorf("%w: %v", appErr.ErrMailSendFailed, err)
	}
	logutil.GetLogger(ctx).Info("verification code sent", zap.String("email", email))
	return nil
}

// Profile returns the record behind an authenticated token subject.
func (s *AuthService) Profile(ctx context.Context, email string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, appErr.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile rewrites the display fields of the subject's record.
func (s *AuthService) UpdateProfile(ctx context.Context, email, username, avatarURL, bio string) (*model.User, error) {
	user, err := s.Profile(ctx, email)
	if err != nil {
		return nil, err
	}
	user.Username = username
	user.AvatarURL = avatarURL
	user.Bio = bio
	user.Mtime = timeutil.NowUnix()
	affected, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, appErr.ErrNotFound
	}
	return user, nil
}

func (s *AuthService) authResult(user *model.User, token string) *AuthResult {
	return &AuthResult{
		Token:     token,
		Email:     user.Email,
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
		Bio:       user.Bio,
	}
}

func generateCode() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	code := make([]byte, codeLength)
	for i := range code {
		code[i] = byte('0' + rng.Intn(10))
	}
	return string(code)
}
