package controller

import (
	"net/http"

	"publigo/web/entity"
	"publigo/web/middleware"
	"publigo/web/security"
	"publigo/web/service"
	"publigo/web/session"

	"github.com/gin-gonic/gin"
)

// UtilisateurController exposes user CRUD plus the nested publication listing.
// Reads are public; patch and delete are restricted to the user themselves.
type UtilisateurController struct {
	userService service.UserService
}

func NewUtilisateurController(g *gin.RouterGroup) *UtilisateurController {
	a := &UtilisateurController{}
	a.initRouter(g)
	return a
}

func (a *UtilisateurController) initRouter(g *gin.RouterGroup) {
	g.GET("/utilisateurs", a.list)
	g.GET("/utilisateurs/:id", a.get)
	g.POST("/utilisateurs", a.create)
	g.GET("/utilisateur/:idUtilisateur/publications", a.listPublications)

	authed := g.Group("/utilisateurs")
	authed.Use(middleware.AuthRequired())
	{
		authed.PATCH("/:id", a.update)
		authed.DELETE("/:id", a.delete)
	}
}

// list returns all users ordered by login descending.
func (a *UtilisateurController) list(c *gin.Context) {
	users, err := a.userService.ListUsers()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.NewUtilisateurViews(users))
}

func (a *UtilisateurController) get(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}
	user, err := a.userService.GetUser(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.NewUtilisateurView(user))
}

type createUtilisateurForm struct {
	Login         string `json:"login" binding:"required,min=3,max=20"`
	Mail          string `json:"mail" binding:"required,email"`
	PlainPassword string `json:"plainPassword" binding:"required,min=8,max=30"`
}

// create is the public signup endpoint.
func (a *UtilisateurController) create(c *gin.Context) {
	var form createUtilisateurForm
	if err := c.ShouldBindJSON(&form); err != nil {
		bindingError(c, err)
		return
	}

	user, err := a.userService.CreateUser(form.Login, form.Mail, form.PlainPassword)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entity.NewUtilisateurView(user))
}

type updateUtilisateurForm struct {
	Mail          *string `json:"mail" binding:"omitempty,email"`
	PlainPassword *string `json:"plainPassword" binding:"omitempty,min=8,max=30"`
}

// update patches mail and/or password. Login is immutable after signup.
func (a *UtilisateurController) update(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}
	target, err := a.userService.GetUser(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	if !security.CanUpdateUtilisateur(caller(c), target) {
		forbidden(c)
		return
	}

	var form updateUtilisateurForm
	if err := c.ShouldBindJSON(&form); err != nil {
		bindingError(c, err)
		return
	}

	user, err := a.userService.UpdateUser(id, form.Mail, form.PlainPassword)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.NewUtilisateurView(user))
}

// delete removes the caller's own account and, with it, their publications.
func (a *UtilisateurController) delete(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}
	target, err := a.userService.GetUser(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	if !security.CanDeleteUtilisateur(caller(c), target) {
		forbidden(c)
		return
	}

	if err := a.userService.DeleteUser(id); err != nil {
		serviceError(c, err)
		return
	}
	session.ClearSession(c)
	c.JSON(http.StatusOK, entity.Msg{Success: true})
}

// listPublications returns one user's publications, newest first.
func (a *UtilisateurController) listPublications(c *gin.Context) {
	id, ok := pathId(c, "idUtilisateur")
	if !ok {
		return
	}
	publications, err := a.userService.ListUserPublications(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.NewPublicationViews(publications))
}
