package Controllers

import (
	"net/http"

	"github.com/A11we11/serenity/Models"
	"github.com/A11we11/serenity/Utils/Token"

	"github.com/gin-gonic/gin"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid, token, err := Models.LoginCheck(input.Email, input.Password)

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email or password is incorrect."})
		return
	}

	user, _ := Models.GetUserByID(uid)

	if user.IsFrozen {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User Frozen"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login Successful", "jwt": token, "role": user.Role})
}

type RegisterInput struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Phone    string      `json:"phone"`
	Password string      `json:"password" binding:"required"`
	Role     Models.Role `json:"role"`
}

func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := Models.User{}

	user.Name = input.Name
	user.Email = input.Email
	user.Phone = input.Phone
	user.Password = input.Password
	user.Role = input.Role
	// Privileged accounts are provisioned out of band, never through
	// public registration.
	if user.Role != Models.RoleDoctor {
		user.Role = Models.RolePatient
	}

	_, err := user.SaveUser()

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": "validated"})
}

func CurrentUser(c *gin.Context) {
	user_id, err := Token.ExtractTokenID(c)

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := Models.GetUserByID(user_id)

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var output struct {
		ID     uint        `json:"ID"`
		Name   string      `json:"name"`
		Email  string      `json:"email"`
		Phone  string      `json:"phone"`
		Role   Models.Role `json:"role"`
		Avatar string      `json:"avatar"`
	}
	output.ID = user.ID
	output.Name = user.Name
	output.Email = user.Email
	output.Phone = user.Phone
	output.Role = user.Role
	output.Avatar = user.Avatar
	c.JSON(http.StatusOK, gin.H{"message": "success", "data": output})
}

func SaveFcmToken(c *gin.Context) {
	var input struct {
		Token string `json:"token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user_id, err := Token.ExtractTokenID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	deviceToken := Models.DeviceToken{UserID: user_id, Value: input.Token}
	if err := Models.DB.Save(&deviceToken).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, nil)
}
