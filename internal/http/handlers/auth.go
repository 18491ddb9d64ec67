package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"igreja_backend/internal/domain"
	"igreja_backend/internal/http/middleware"
	"igreja_backend/internal/logger"
	"igreja_backend/internal/repositories"
	"igreja_backend/internal/validation"
)

var loginSchema = validation.Schema{Fields: []validation.Field{
	{Name: "email", Kind: validation.Email, Required: true},
	{Name: "password", Kind: validation.String, Required: true, MinLen: 6, MaxLen: 72},
}}

// registerSchema deliberately has no role field: public registration always
// creates a member account, and privileged roles are granted afterwards
// through the admin-only role endpoint.
var registerSchema = validation.Schema{Fields: []validation.Field{
	{Name: "name", Kind: validation.String, Required: true, MinLen: 2, MaxLen: 120},
	{Name: "email", Kind: validation.Email, Required: true},
	{Name: "password", Kind: validation.String, Required: true, MinLen: 6, MaxLen: 72},
}}

// AuthHandler issues JWTs and the session cookie. Login failures are
// deliberately indistinct between unknown email and wrong password.
type AuthHandler struct {
	Users  repositories.UserRepo
	Secret []byte
	// CookieSecure controls the Secure flag of the session cookie; off in
	// local development.
	CookieSecure bool
}

func (h AuthHandler) Login(c *gin.Context) {
	input, ok := BindObject(c)
	if !ok {
		return
	}
	valid, err := loginSchema.Validate(input, false)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	email, _ := valid["email"].(string)
	password, _ := valid["password"].(string)

	user, err := h.Users.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if domain.IsNotFound(err) {
			RespondDomainError(c, domain.AuthError{Msg: "credenciais inválidas"})
			return
		}
		RespondDomainError(c, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		RespondDomainError(c, domain.AuthError{Msg: "credenciais inválidas"})
		return
	}

	token, err := middleware.GenerateToken(h.Secret, user.ID, user.Role, middleware.TokenTTL)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	session, err := middleware.GenerateToken(h.Secret, user.ID, user.Role, middleware.SessionTTL)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.setSessionCookie(c, session, int(middleware.SessionTTL.Seconds()))

	logger.FromGin(c).Info().Int64("user_id", user.ID).Msg("login realizado")
	RespondOK(c, gin.H{"token": token, "user": user.Public()}, "login realizado com sucesso")
}

func (h AuthHandler) Register(c *gin.Context) {
	input, ok := BindObject(c)
	if !ok {
		return
	}
	valid, err := registerSchema.Validate(input, false)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	password, _ := valid["password"].(string)
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	name, _ := valid["name"].(string)
	email, _ := valid["email"].(string)
	user, err := h.Users.Create(c.Request.Context(), name, email, string(hash), domain.RoleMember)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondCreated(c, user.Public(), "usuário cadastrado com sucesso")
}

// Me returns the authenticated user's profile.
func (h AuthHandler) Me(c *gin.Context) {
	rc, ok := middleware.CurrentUser(c)
	if !ok {
		RespondDomainError(c, domain.AuthError{Msg: "não autenticado"})
		return
	}
	user, err := h.Users.GetByID(c.Request.Context(), rc.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, user.Public(), "")
}

func (h AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	RespondOK(c, nil, "sessão encerrada")
}

func (h AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, value, maxAge, "/", "", h.CookieSecure, true)
}
