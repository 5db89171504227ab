package controller

import (
	"net/http"

	"publigo/config"
	"publigo/logger"
	"publigo/web/entity"
	"publigo/web/service"
	"publigo/web/session"

	"github.com/gin-gonic/gin"
)

// LoginForm represents the login request structure.
type LoginForm struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthController handles session login and logout.
type AuthController struct {
	userService service.UserService
}

// NewAuthController creates a new AuthController and initializes its routes.
func NewAuthController(g *gin.RouterGroup) *AuthController {
	a := &AuthController{}
	a.initRouter(g)
	return a
}

func (a *AuthController) initRouter(g *gin.RouterGroup) {
	g.POST("/login", a.login)
	g.POST("/logout", a.logout)
}

// login authenticates the credentials and opens a session.
func (a *AuthController) login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		bindingError(c, err)
		return
	}

	user := a.userService.CheckUser(form.Login, form.Password)
	if user == nil {
		logger.Warningf("failed login for %q", form.Login)
		c.JSON(http.StatusUnauthorized, entity.ErrorBody{Error: "wrong login or password"})
		return
	}

	session.SetMaxAge(c, config.GetSessionMaxAge()*60)
	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("unable to save session:", err)
		c.JSON(http.StatusInternalServerError, entity.ErrorBody{Error: "internal error"})
		return
	}

	logger.Infof("%s logged in successfully", user.Login)
	c.JSON(http.StatusOK, entity.NewUtilisateurView(user))
}

// logout clears the session.
func (a *AuthController) logout(c *gin.Context) {
	if id, ok := session.GetLoginUserId(c); ok {
		logger.Infof("user %d logged out", id)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	c.JSON(http.StatusOK, entity.Msg{Success: true})
}
