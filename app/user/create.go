package user

import (
	"net/http"
	"strings"

	"github.com/OptimisticTrousers/word-reminder-sub001/internal"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/response"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type createBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func UserCreate(c *gin.Context, d *internal.Deps) {
	requestID := c.GetString("requestID")

	var data createBody
	if err := c.ShouldBindJSON(&data); err != nil {
		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	data.Username = strings.TrimSpace(data.Username)

	if err := validators.UsernameValidator(data.Username); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := d.Passwords.Hash(data.Password)
	if err != nil {
		response.Internal(c, "Failed to hash password", err)
		return
	}

	res, err := d.Store.CreateUser(c.Request.Context(), data.Username, hash)
	if err != nil {
		response.Internal(c, "Failed to create user", err)
		return
	}

	response.Result(c, res, "user", http.StatusCreated, http.StatusConflict)
}
