package entity

import "errors"

var (
	ErrLeadNotFound       = errors.New("lead não encontrado")
	ErrInvalidStage       = errors.New("status fora do pipeline")
	ErrEmailAlreadyExists = errors.New("email já cadastrado")
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrUnauthenticated    = errors.New("sessão inválida ou expirada")
	ErrUserNotFound       = errors.New("usuário não encontrado")
)
