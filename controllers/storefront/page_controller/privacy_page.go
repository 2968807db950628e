package page_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PrivacyPage renders the static privacy policy.
func (ctrl *Controller) PrivacyPage(c *gin.Context) {
	c.HTML(http.StatusOK, privacyTemplate, ctrl.layout("Políticas de Privacidade"))
}

type errorPage struct {
	layout
	Heading string
	Detail  string
}

func (ctrl *Controller) renderError(c *gin.Context, status int, heading, detail string) {
	c.HTML(status, errorTemplate, errorPage{
		layout:  ctrl.layout(heading),
		Heading: heading,
		Detail:  detail,
	})
}

// NotFoundPage is the router's NoRoute handler.
func (ctrl *Controller) NotFoundPage(c *gin.Context) {
	ctrl.renderError(c, http.StatusNotFound, "Página não encontrada", "O endereço acessado não existe.")
}
