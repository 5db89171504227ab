package controller

import (
	"net/http"

	"publigo/web/entity"
	"publigo/web/middleware"
	"publigo/web/security"
	"publigo/web/service"

	"github.com/gin-gonic/gin"
)

// PublicationController exposes publication reads publicly and gates create
// and delete behind authentication. There is no update operation.
type PublicationController struct {
	publicationService service.PublicationService
}

func NewPublicationController(g *gin.RouterGroup) *PublicationController {
	a := &PublicationController{}
	a.initRouter(g)
	return a
}

func (a *PublicationController) initRouter(g *gin.RouterGroup) {
	g.GET("/publications", a.list)
	g.GET("/publications/:id", a.get)

	authed := g.Group("/publications")
	authed.Use(middleware.AuthRequired())
	{
		authed.POST("", a.create)
		authed.DELETE("/:id", a.delete)
	}
}

// list returns all publications ordered by date descending.
func (a *PublicationController) list(c *gin.Context) {
	publications, err := a.publicationService.ListPublications()
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.NewPublicationViews(publications))
}

func (a *PublicationController) get(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}
	publication, err := a.publicationService.GetPublication(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.NewPublicationView(publication))
}

// createPublicationForm deliberately binds only the message: any author or
// date in the payload is ignored, the server sets both.
type createPublicationForm struct {
	Message string `json:"message" binding:"required,min=4,max=200"`
}

func (a *PublicationController) create(c *gin.Context) {
	user := caller(c)
	if !security.CanCreatePublication(user) {
		forbidden(c)
		return
	}

	var form createPublicationForm
	if err := c.ShouldBindJSON(&form); err != nil {
		bindingError(c, err)
		return
	}

	publication, err := a.publicationService.CreatePublication(user, form.Message)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entity.NewPublicationView(publication))
}

func (a *PublicationController) delete(c *gin.Context) {
	id, ok := pathId(c, "id")
	if !ok {
		return
	}
	publication, err := a.publicationService.GetPublication(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	if !security.CanDeletePublication(caller(c), publication) {
		forbidden(c)
		return
	}

	if err := a.publicationService.DeletePublication(id); err != nil {
		serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entity.Msg{Success: true})
}
