package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"ptmd-service/internal/app/config"
	"ptmd-service/internal/app/models"
	"ptmd-service/internal/pkg/constvars"
	"ptmd-service/internal/pkg/dto/requests"
	"ptmd-service/internal/pkg/exceptions"
	"ptmd-service/internal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUserRepository struct {
	users  []*models.User
	nextID int
}

func (r *fakeUserRepository) CreateUser(_ context.Context, userModel *models.User) (string, error) {
	r.nextID++
	stored := *userModel
	stored.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users = append(r.users, &stored)
	return stored.ID, nil
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) FindByCPF(_ context.Context, cpf string) (*models.User, error) {
	for _, user := range r.users {
		if user.CPF == cpf && cpf != "" {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) FindByCRM(_ context.Context, crm string) (*models.User, error) {
	for _, user := range r.users {
		if user.CRM == crm && crm != "" {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) FindByID(_ context.Context, userID string) (*models.User, error) {
	for _, user := range r.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) UpdateUser(_ context.Context, userModel *models.User) error {
	for i, user := range r.users {
		if user.ID == userModel.ID {
			stored := *userModel
			r.users[i] = &stored
			return nil
		}
	}
	return exceptions.ErrMongoDBUpdateDocument(errors.New("user not found"))
}

type fakeSessionService struct {
	sessions map[string]*models.Session
}

func (s *fakeSessionService) CreateSession(_ context.Context, session *models.Session, _ time.Duration) error {
	s.sessions[session.SessionID] = session
	return nil
}

func (s *fakeSessionService) GetSession(_ context.Context, sessionID string) (*models.Session, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, exceptions.ErrSessionInvalid(errors.New("session not found"))
	}
	return session, nil
}

func (s *fakeSessionService) DeleteSession(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func newTestUsecase() (AuthUsecase, *fakeUserRepository, *fakeSessionService) {
	userRepository := &fakeUserRepository{}
	sessionService := &fakeSessionService{sessions: make(map[string]*models.Session)}
	internalConfig := &config.InternalConfig{
		App: config.App{AdminEmail: "admin", AdminPassword: "admin", AdminNome: "Administrador"},
		JWT: config.JWT{Secret: "test-secret", ExpTimeInHour: 1},
	}
	usecase := NewAuthUsecase(userRepository, sessionService, internalConfig, zap.NewNop())
	return usecase, userRepository, sessionService
}

func validRegisterRequest() *requests.RegisterMedico {
	return &requests.RegisterMedico{
		Nome:     "Dr. Silva",
		Email:    "Silva@Example.com",
		Password: "Str0ng!Password",
		CPF:      "123.456.789-00",
		CRM:      "CRM-1234",
	}
}

func assertStatusCode(t *testing.T, err error, expected int) {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected a CustomError, got %v", err)
	assert.Equal(t, expected, customErr.StatusCode)
}

func TestRegisterMedico(t *testing.T) {
	t.Run("registers with normalized email and cpf", func(t *testing.T) {
		usecase, userRepository, _ := newTestUsecase()

		response, err := usecase.RegisterMedico(context.Background(), validRegisterRequest())
		require.NoError(t, err)
		assert.Equal(t, "silva@example.com", response.Email)
		assert.Equal(t, string(models.RoleMedico), response.Role)

		stored := userRepository.users[0]
		assert.Equal(t, "12345678900", stored.CPF)
		assert.NotEqual(t, "Str0ng!Password", stored.Password, "password must be hashed")
		assert.True(t, utils.CheckPasswordHash("Str0ng!Password", stored.Password))
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		usecase, _, _ := newTestUsecase()
		_, err := usecase.RegisterMedico(context.Background(), validRegisterRequest())
		require.NoError(t, err)

		duplicate := validRegisterRequest()
		duplicate.CPF = "999.888.777-66"
		duplicate.CRM = "CRM-9999"
		_, err = usecase.RegisterMedico(context.Background(), duplicate)
		assertStatusCode(t, err, constvars.StatusBadRequest)
	})

	t.Run("duplicate cpf is rejected", func(t *testing.T) {
		usecase, _, _ := newTestUsecase()
		_, err := usecase.RegisterMedico(context.Background(), validRegisterRequest())
		require.NoError(t, err)

		duplicate := validRegisterRequest()
		duplicate.Email = "other@example.com"
		duplicate.CRM = "CRM-9999"
		_, err = usecase.RegisterMedico(context.Background(), duplicate)
		assertStatusCode(t, err, constvars.StatusBadRequest)
	})

	t.Run("weak password is rejected", func(t *testing.T) {
		usecase, _, _ := newTestUsecase()
		request := validRegisterRequest()
		request.Password = "weak"
		_, err := usecase.RegisterMedico(context.Background(), request)
		assertStatusCode(t, err, constvars.StatusBadRequest)
	})
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials yield a token backed by a session", func(t *testing.T) {
		usecase, _, sessionService := newTestUsecase()
		_, err := usecase.RegisterMedico(context.Background(), validRegisterRequest())
		require.NoError(t, err)

		response, err := usecase.Login(context.Background(), &requests.Login{
			Email:    "silva@example.com",
			Password: "Str0ng!Password",
		})
		require.NoError(t, err)
		assert.Equal(t, "Bearer", response.Type)
		assert.NotEmpty(t, response.Token)
		assert.Len(t, sessionService.sessions, 1)

		sessionID, err := utils.ParseJWT(response.Token, "test-secret")
		require.NoError(t, err)
		_, ok := sessionService.sessions[sessionID]
		assert.True(t, ok, "token must reference the stored session")
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		usecase, _, _ := newTestUsecase()
		_, err := usecase.RegisterMedico(context.Background(), validRegisterRequest())
		require.NoError(t, err)

		_, err = usecase.Login(context.Background(), &requests.Login{
			Email:    "silva@example.com",
			Password: "WrongPassword!1",
		})
		assertStatusCode(t, err, constvars.StatusUnauthorized)
	})

	t.Run("unknown email is unauthorized", func(t *testing.T) {
		usecase, _, _ := newTestUsecase()
		_, err := usecase.Login(context.Background(), &requests.Login{
			Email:    "nobody@example.com",
			Password: "Whatever!1",
		})
		assertStatusCode(t, err, constvars.StatusUnauthorized)
	})
}

func TestLogout(t *testing.T) {
	usecase, _, sessionService := newTestUsecase()
	session := &models.Session{SessionID: "session-1", UserID: "user-1", Role: models.RoleMedico}
	sessionService.sessions["session-1"] = session

	err := usecase.Logout(context.Background(), session)
	require.NoError(t, err)
	assert.Empty(t, sessionService.sessions)
}

func TestChangePassword(t *testing.T) {
	t.Run("changes password when current one matches", func(t *testing.T) {
		usecase, userRepository, _ := newTestUsecase()
		_, err := usecase.RegisterMedico(context.Background(), validRegisterRequest())
		require.NoError(t, err)
		session := &models.Session{SessionID: "s1", UserID: userRepository.users[0].ID, Role: models.RoleMedico}

		err = usecase.ChangePassword(context.Background(), session, &requests.ChangePassword{
			CurrentPassword: "Str0ng!Password",
			NewPassword:     "N3w!Password",
		})
		require.NoError(t, err)
		assert.True(t, utils.CheckPasswordHash("N3w!Password", userRepository.users[0].Password))
	})

	t.Run("wrong current password is rejected", func(t *testing.T) {
		usecase, userRepository, _ := newTestUsecase()
		_, err := usecase.RegisterMedico(context.Background(), validRegisterRequest())
		require.NoError(t, err)
		session := &models.Session{SessionID: "s1", UserID: userRepository.users[0].ID, Role: models.RoleMedico}

		err = usecase.ChangePassword(context.Background(), session, &requests.ChangePassword{
			CurrentPassword: "Wrong!Password1",
			NewPassword:     "N3w!Password",
		})
		assertStatusCode(t, err, constvars.StatusBadRequest)
	})
}

func TestEnsureAdminUser(t *testing.T) {
	t.Run("seeds the admin once", func(t *testing.T) {
		usecase, userRepository, _ := newTestUsecase()

		require.NoError(t, usecase.EnsureAdminUser(context.Background()))
		require.Len(t, userRepository.users, 1)
		assert.Equal(t, models.RoleAdmin, userRepository.users[0].Role)
		assert.Equal(t, "admin", userRepository.users[0].Email)

		require.NoError(t, usecase.EnsureAdminUser(context.Background()))
		assert.Len(t, userRepository.users, 1, "second run must not duplicate the admin")
	})

	t.Run("seeded admin can log in", func(t *testing.T) {
		usecase, _, _ := newTestUsecase()
		require.NoError(t, usecase.EnsureAdminUser(context.Background()))

		response, err := usecase.Login(context.Background(), &requests.Login{Email: "admin", Password: "admin"})
		require.NoError(t, err)
		assert.Equal(t, string(models.RoleAdmin), response.Role)
	})
}
