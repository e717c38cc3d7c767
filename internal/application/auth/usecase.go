package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/loretomm/fattura-api/internal/application/dto"
	"github.com/loretomm/fattura-api/internal/domain"
	"github.com/loretomm/fattura-api/pkg/config"
	"github.com/loretomm/fattura-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login del operador contra las credenciales configuradas.
// No hay base de datos de usuarios: el sistema tiene un único operador cuyo
// hash bcrypt llega por configuración.
type AuthUseCase struct {
	authCfg config.AuthConfig
	jwtCfg  JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(authCfg config.AuthConfig, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{authCfg: authCfg, jwtCfg: jwtCfg}
}

// Login verifica username/password y genera el JWT del operador.
// Retorna domain.ErrUnauthorized ante cualquier credencial incorrecta, sin
// distinguir usuario de contraseña.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	userOK := subtle.ConstantTimeCompare([]byte(in.Username), []byte(uc.authCfg.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(uc.authCfg.PasswordHash), []byte(in.Password))
	if !userOK || passErr != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, in.Username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes,
	}, nil
}
