package handler

import (
	"net/http"

	"github.com/arthurlfarjanes/PlanilhaGastos/internal/middleware"
	"github.com/arthurlfarjanes/PlanilhaGastos/internal/util"

	"github.com/gin-gonic/gin"
)

// GetMe returns the identity bound to the presented token.
func GetMe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not authenticated")
		return
	}

	username, _ := c.Get(middleware.CtxUsername)
	util.Success(c, util.Response{
		"id":       userID,
		"username": username,
	})
}
