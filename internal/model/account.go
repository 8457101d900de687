package model

import "time"

// Roles stored on an account. Signup always assigns RoleUser; RoleAdmin is
// granted out of band.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// SurfLevels lists the accepted values for the surf_level field.
var SurfLevels = []string{"beginner", "intermediate", "advanced", "expert"}

func ValidSurfLevel(level string) bool {
	for _, l := range SurfLevels {
		if l == level {
			return true
		}
	}
	return false
}

type Account struct {
	ID           string    `json:"id"`
	Prenom       string    `json:"prenom"`
	Nom          string    `json:"nom"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Location     string    `json:"location"`
	SurfLevel    string    `json:"surf_level"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// AccountView is the public shape returned to clients. It never carries the
// secret hash.
type AccountView struct {
	ID        string `json:"id"`
	Prenom    string `json:"prenom"`
	Nom       string `json:"nom"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Location  string `json:"location"`
	SurfLevel string `json:"surf_level"`
	Role      string `json:"role"`
}

func (a Account) View() AccountView {
	return AccountView{
		ID:        a.ID,
		Prenom:    a.Prenom,
		Nom:       a.Nom,
		Username:  a.Username,
		Email:     a.Email,
		Location:  a.Location,
		SurfLevel: a.SurfLevel,
		Role:      a.Role,
	}
}

// AuthClaims is the decoded content of a verified token. Access tokens carry
// the full set; refresh tokens only the account id. Profile fields are never
// embedded, they are re-fetched from the store on each request.
type AuthClaims struct {
	AccountID string `json:"sub"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Type      string `json:"typ"`
	TokenID   string `json:"jti"`
}

// TokenPair is what a successful login produces. The refresh token travels
// only in an HTTP-only cookie, so it is not part of the JSON body.
type TokenPair struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"-"`
	ExpiresIn    int64       `json:"expiresIn"`
	User         AccountView `json:"user"`
}
