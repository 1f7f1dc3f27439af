package auth

import "time"

// Claims representa la información extraída del access token.
type Claims struct {
	UserID    string
	Email     string
	SessionID string
}

// Session es la sesión activa devuelta por el servicio de auth.
// En el flujo de reset, es la "reset session" creada al seguir el link del email.
type Session struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	Email        string
	ExpiresAt    time.Time
}
