package dto

// AuthRequest describes login/password payload.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// AdminResponse describes the signed-in operator.
type AdminResponse struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}
