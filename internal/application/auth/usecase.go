// Package auth implementa el login del operador. La aplicación es de un
// solo operador (heredado del escritorio): las credenciales viven en la
// configuración como email + hash bcrypt, sin tabla de usuarios.
package auth

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/aarsoma/deliverynote-api/internal/application/dto"
	"github.com/aarsoma/deliverynote-api/internal/domain"
	"github.com/aarsoma/deliverynote-api/pkg/jwt"
)

// OperatorConfig credenciales del operador configurado.
type OperatorConfig struct {
	Email        string
	PasswordHash string // hash bcrypt de la contraseña
	Name         string
}

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase caso de uso de autenticación.
type AuthUseCase struct {
	operator OperatorConfig
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(operator OperatorConfig, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{operator: operator, jwtCfg: jwtCfg}
}

// Login verifica email y contraseña contra el operador configurado y emite
// un JWT. Cualquier discrepancia devuelve ErrUnauthorized sin distinguir
// si falló el email o la contraseña.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if uc.operator.Email == "" || uc.operator.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	if !strings.EqualFold(in.Email, uc.operator.Email) {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.operator.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.operator.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		Email: uc.operator.Email,
		Name:  uc.operator.Name,
	}, nil
}
