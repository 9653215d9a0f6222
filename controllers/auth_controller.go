package controllers

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/gin-gonic/gin"

	"github.com/khoalevan2535/Goldenbamboo-sub001/configs"
	"github.com/khoalevan2535/Goldenbamboo-sub001/pkg/resp"
	"github.com/khoalevan2535/Goldenbamboo-sub001/repository"
	"github.com/khoalevan2535/Goldenbamboo-sub001/utils"
)

// AuthController is the thin gateway to the external account system: it only
// exchanges seeded staff credentials for a token.
type AuthController struct {
	Accounts *repository.AccountRepository
	Cfg      *configs.Config
}

func NewAuthController(accounts *repository.AccountRepository, cfg *configs.Config) *AuthController {
	return &AuthController{Accounts: accounts, Cfg: cfg}
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	account, err := ac.Accounts.FindByUsername(req.Username)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	if account == nil || bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)) != nil {
		resp.Unauthorized(c, "invalid credentials")
		return
	}

	token, err := utils.GenerateToken(account.ID, account.Role, ac.Cfg.JWTSecret, ac.Cfg.JWTTTL)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "role": account.Role})
}
