package dto

type LoginRequest struct {
	AccountId string `json:"account_id"`
	Password  string `json:"password"`
}

type LoginResponse struct {
	AccountId string `json:"account_id"`
	Token     string `json:"token"`
}
