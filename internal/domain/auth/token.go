package auth

import "time"

// Token 為簽發給使用者的 access token。
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}
