package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/squeegee-samurai/squeegee-api/internal/interface/http"
)

// AuthModule exposes the public signup and login routes.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/signup", m.Handler.Signup)
	auth.POST("/login", m.Handler.Login)
}
