package auth

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/trailmark/trailmark-backend/internal/pkg/model"
	"github.com/trailmark/trailmark-backend/internal/pkg/reject"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type authService struct {
	db *gorm.DB
}

// register creates the user and issues their first token. A taken username
// is a per-field validation failure, not an internal error.
func (as *authService) register(username, password string) (string, reject.FieldErrors, *reject.ProblemWithTrace) {
	var tokenKey string

	err := as.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		f := tx.Model(&model.User{}).Where("username = ?", username).Count(&count)
		if f.Error != nil {
			return f.Error
		}
		if count > 0 {
			return errUsernameTaken
		}

		hash, hashErr := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if hashErr != nil {
			return hashErr
		}

		user := model.User{Username: username, PasswordHash: string(hash)}
		if f := tx.Create(&user); f.Error != nil {
			log.Warn().Err(f.Error).Msg("error persisting user")
			return f.Error
		}

		token := model.AuthToken{Key: uuid.New().String(), UserId: user.Id}
		if f := tx.Create(&token); f.Error != nil {
			log.Warn().Err(f.Error).Msg("error persisting auth token")
			return f.Error
		}

		tokenKey = token.Key
		return nil
	})

	if errors.Is(err, errUsernameTaken) {
		fieldErrors := reject.FieldErrors{}
		fieldErrors.Add("username", "A user with that username already exists.")
		return "", fieldErrors, nil
	}
	if err != nil {
		return "", nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(err),
			Cause:   err,
		}
	}
	return tokenKey, nil, nil
}

// login verifies the credentials and issues a fresh token.
func (as *authService) login(username, password string) (string, reject.FieldErrors, *reject.ProblemWithTrace) {
	var user model.User
	result := as.db.
		Model(&model.User{}).
		Where("username = ?", username).
		First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return "", badCredentials(), nil
	}
	if result.Error != nil {
		return "", nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", badCredentials(), nil
	}

	token := model.AuthToken{Key: uuid.New().String(), UserId: user.Id}
	if f := as.db.Create(&token); f.Error != nil {
		return "", nil, &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(f.Error),
			Cause:   f.Error,
		}
	}
	return token.Key, nil, nil
}

// logout revokes the token the request authenticated with.
func (as *authService) logout(tokenKey string) *reject.ProblemWithTrace {
	result := as.db.Where("key = ?", tokenKey).Delete(&model.AuthToken{})
	if result.Error != nil {
		return &reject.ProblemWithTrace{
			Problem: reject.UnexpectedProblem(result.Error),
			Cause:   result.Error,
		}
	}
	return nil
}

var errUsernameTaken = errors.New("username already taken")

func badCredentials() reject.FieldErrors {
	fieldErrors := reject.FieldErrors{}
	fieldErrors.Add("non_field_errors", "Unable to log in with provided credentials.")
	return fieldErrors
}
