package handlers

import (
	"net/http"

	intconfig "ridereport/internal/config"
	"ridereport/internal/domain"
	"ridereport/internal/http/middleware"
	"ridereport/internal/provider"
	"ridereport/internal/repositories"
	"ridereport/internal/utils"

	"github.com/gin-gonic/gin"
)

// API carries the wired dependencies for all handlers.
type API struct {
	Env      intconfig.Env
	Provider *provider.Client
	Sessions repositories.RideSessionRepository
}

type sessionTokenRequest struct {
	SessionCookie string `json:"sessionCookie"`
	CSRFToken     string `json:"csrfToken"`
}

// CreateSessionToken wraps an externally captured provider credential into a
// signed bearer token for subsequent pipeline calls. The credential is never
// stored server-side.
//
// POST /api/auth/session
func (a API) CreateSessionToken(c *gin.Context) {
	var req sessionTokenRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	cred := domain.Credential{
		SessionCookie: utils.TrimOrEmpty(req.SessionCookie),
		CSRFToken:     utils.TrimOrEmpty(req.CSRFToken),
	}
	if !cred.Valid() {
		RespondDomainError(c, domain.ValidationError{Field: "credential", Msg: "sessionCookie and csrfToken are required"})
		return
	}

	token, err := middleware.MintSessionToken([]byte(a.Env.SessionSecret), cred, a.Env.SessionTTL)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "mint session token", Err: err})
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "auth", "session_token_issued", "credential wrapped")
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresIn": int(a.Env.SessionTTL.Seconds()),
	})
}
