package model

// AuthUser - 인증된 상담원 정보 (미들웨어가 컨텍스트에 저장)
type AuthUser struct {
	UserID  int64  `json:"userId"`
	LoginID string `json:"loginId"`
}

type LoginRequest struct {
	LoginID  string `json:"login_id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
