package auth

import (
	"context"
	"fmt"
	"time"

	"ptmd-service/internal/app/config"
	"ptmd-service/internal/app/contracts"
	"ptmd-service/internal/app/models"
	"ptmd-service/internal/app/services/core/users"
	"ptmd-service/internal/pkg/constvars"
	"ptmd-service/internal/pkg/dto/requests"
	"ptmd-service/internal/pkg/dto/responses"
	"ptmd-service/internal/pkg/exceptions"
	"ptmd-service/internal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type authUsecase struct {
	UserRepository users.UserRepository
	SessionService contracts.SessionService
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

func NewAuthUsecase(
	userRepository users.UserRepository,
	sessionService contracts.SessionService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) AuthUsecase {
	return &authUsecase{
		UserRepository: userRepository,
		SessionService: sessionService,
		InternalConfig: internalConfig,
		Log:            logger,
	}
}

func (u *authUsecase) RegisterMedico(ctx context.Context, request *requests.RegisterMedico) (*responses.RegisterMedico, error) {
	utils.SanitizeRegisterMedicoRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	existing, err := u.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrEmailAlreadyExist(fmt.Errorf("email %s already registered", request.Email))
	}

	existing, err = u.UserRepository.FindByCPF(ctx, request.CPF)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrCPFAlreadyExist(fmt.Errorf("cpf already registered"))
	}

	existing, err = u.UserRepository.FindByCRM(ctx, request.CRM)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrCRMAlreadyExist(fmt.Errorf("crm %s already registered", request.CRM))
	}

	dataNascimento, err := utils.ParseOptionalDate(request.DataNascimento)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}

	userModel := &models.User{
		Email:          request.Email,
		Password:       hashedPassword,
		Nome:           request.Nome,
		CPF:            request.CPF,
		CRM:            request.CRM,
		DataNascimento: dataNascimento,
		Role:           models.RoleMedico,
		CreatedAt:      time.Now(),
	}
	userID, err := u.UserRepository.CreateUser(ctx, userModel)
	if err != nil {
		return nil, err
	}

	utils.LogBusinessEvent(u.Log, "medico_registered", utils.GetRequestID(ctx),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	return &responses.RegisterMedico{
		ID:    userID,
		Nome:  userModel.Nome,
		Email: userModel.Email,
		Role:  string(userModel.Role),
	}, nil
}

func (u *authUsecase) Login(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	utils.SanitizeLoginRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}

	user, err := u.UserRepository.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(request.Password, user.Password) {
		return nil, exceptions.ErrInvalidUsernameOrPassword(fmt.Errorf("bad credentials for %s", request.Email))
	}

	session := &models.Session{
		SessionID: uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
	}
	ttl := time.Duration(u.InternalConfig.JWT.ExpTimeInHour) * time.Hour
	if err := u.SessionService.CreateSession(ctx, session, ttl); err != nil {
		return nil, err
	}

	token, err := utils.GenerateSessionJWT(session.SessionID, u.InternalConfig.JWT.Secret, u.InternalConfig.JWT.ExpTimeInHour)
	if err != nil {
		return nil, err
	}

	return &responses.Login{
		Token: token,
		Type:  "Bearer",
		Email: user.Email,
		Role:  string(user.Role),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, session *models.Session) error {
	return u.SessionService.DeleteSession(ctx, session.SessionID)
}

func (u *authUsecase) ChangePassword(ctx context.Context, session *models.Session, request *requests.ChangePassword) error {
	if err := utils.ValidateStruct(request); err != nil {
		return exceptions.ErrInputValidation(err)
	}

	user, err := u.UserRepository.FindByID(ctx, session.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return exceptions.ErrUserNotExist(fmt.Errorf("user %s not found", session.UserID))
	}
	if !utils.CheckPasswordHash(request.CurrentPassword, user.Password) {
		return exceptions.ErrCurrentPasswordIncorrect(fmt.Errorf("current password mismatch"))
	}

	hashedPassword, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return exceptions.ErrHashPassword(err)
	}
	user.Password = hashedPassword
	return u.UserRepository.UpdateUser(ctx, user)
}

func (u *authUsecase) EnsureAdminUser(ctx context.Context) error {
	appConfig := u.InternalConfig.App

	existing, err := u.UserRepository.FindByEmail(ctx, appConfig.AdminEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hashedPassword, err := utils.HashPassword(appConfig.AdminPassword)
	if err != nil {
		return exceptions.ErrHashPassword(err)
	}

	userID, err := u.UserRepository.CreateUser(ctx, &models.User{
		Email:     appConfig.AdminEmail,
		Password:  hashedPassword,
		Nome:      appConfig.AdminNome,
		Role:      models.RoleAdmin,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return err
	}

	u.Log.Info("seeded admin user",
		zap.String(constvars.LoggingUserIDKey, userID),
	)
	return nil
}
