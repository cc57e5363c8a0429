package transport

import "github.com/fastygo/homeplanner/domain"

// ErrorBody is returned with every non-2xx response.
type ErrorBody struct {
	Error string `json:"error"`
}

// InsertedBody is returned after a successful create.
type InsertedBody struct {
	InsertedID domain.ID `json:"insertedId"`
}

// MessageBody is returned after a successful delete.
type MessageBody struct {
	Msg string `json:"msg"`
}

// HealthBody reports dependency status.
type HealthBody struct {
	Status    string          `json:"status"`
	Services  map[string]bool `json:"services"`
	LastCheck string          `json:"last_check,omitempty"`
}

func NewError(message string) ErrorBody {
	return ErrorBody{Error: message}
}
