package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jmcasillas/inventario-web/internal/application/dto"
	"github.com/jmcasillas/inventario-web/internal/domain"
	"github.com/jmcasillas/inventario-web/internal/domain/entity"
	"github.com/jmcasillas/inventario-web/internal/domain/repository"
	"github.com/jmcasillas/inventario-web/pkg/jwt"
)

// JWTConfig configuración para generación de tokens de API.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de identidad: login, resolución de sesión y alta
// de usuarios (solo admin, autorizado en la capa HTTP).
type AuthUseCase struct {
	users  repository.UserRepository
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, jwtCfg: jwtCfg}
}

// Login verifica nombre y password contra el hash bcrypt almacenado.
// Devuelve domain.ErrInvalidCredentials tanto si el usuario no existe como si
// el password no coincide, sin distinguir los dos casos.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*entity.User, error) {
	user, err := uc.users.GetByName(ctx, strings.TrimSpace(in.Name))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// LoginToken hace login y emite un JWT firmado para clientes de API.
func (uc *AuthUseCase) LoginToken(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.Login(ctx, in)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// Identify re-carga el usuario atado a una sesión o token. Devuelve (nil, nil)
// si ya no existe: la sesión debe tratarse como inválida.
func (uc *AuthUseCase) Identify(ctx context.Context, id int64) (*entity.User, error) {
	return uc.users.GetByID(ctx, id)
}

// CreateUser crea un usuario: valida el conjunto cerrado de roles, hashea el
// password con bcrypt y persiste. Devuelve domain.ErrDuplicateUser si el
// nombre ya está registrado; en ese caso no se escribe ninguna fila.
func (uc *AuthUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Password == "" || in.Role == "" {
		return nil, fmt.Errorf("%w: nombre, password y rol son requeridos", domain.ErrInvalidInput)
	}
	if !entity.ValidRole(in.Role) {
		return nil, fmt.Errorf("%w: rol desconocido %q", domain.ErrInvalidInput, in.Role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Name:         name,
		PasswordHash: string(hash),
		Role:         in.Role,
	}
	// La constraint UNIQUE de la tabla es la verificación real; el repo mapea
	// la violación a ErrDuplicateUser.
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ListUsers lista los usuarios registrados (panel de administración).
func (uc *AuthUseCase) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	list, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUserResponse(u))
	}
	return items, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{ID: u.ID, Name: u.Name, Role: u.Role}
}
