package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/auth"
)

// AccountsController handles registration and login.
type AccountsController struct {
	accounts AccountOperations
}

func NewAccountsController(accounts AccountOperations) *AccountsController {
	return &AccountsController{accounts: accounts}
}

// Register handles POST /auth/register.
func (ac *AccountsController) Register(c *gin.Context) {
	var creds auth.Credentials
	if !bindBody(c, &creds) {
		return
	}
	res, err := ac.accounts.Register(c.Request.Context(), creds)
	respondResult(c, res, err)
}

// Login handles POST /auth/login.
func (ac *AccountsController) Login(c *gin.Context) {
	var creds auth.Credentials
	if !bindBody(c, &creds) {
		return
	}
	res, err := ac.accounts.Login(c.Request.Context(), creds)
	respondResult(c, res, err)
}
