package dto

// ErrorResponse cuerpo de error HTTP. Success siempre es false; el texto de
// Message es apto para el cliente (nunca el error crudo del almacén).
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error construye un ErrorResponse.
func Error(code, message string) ErrorResponse {
	return ErrorResponse{Success: false, Code: code, Message: message}
}

// SuccessResponse respuesta de operaciones sin cuerpo propio (ej. delete).
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
