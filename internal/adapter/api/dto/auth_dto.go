package dto

// LoginRequest representa as credenciais de um negócio: o ID e o token de
// webhook cadastrado na criação
type LoginRequest struct {
	BusinessID string `json:"business_id" binding:"required"`
	Token      string `json:"token" binding:"required"`
}

// LoginResponse representa a resposta de autenticação bem-sucedida
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	BusinessID  string `json:"business_id"`
	Name        string `json:"name"`
}
