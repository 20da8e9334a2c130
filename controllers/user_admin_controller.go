package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"go-postgres-stockledger/config"
	"go-postgres-stockledger/models"
	"go-postgres-stockledger/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// GET /api/admin/users
func AdminListUsers(c *gin.Context) {
	var users []models.User
	if err := config.DB.Order("id").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	utils.Success(c, "users", users)
}

type CreateUserInput struct {
	Username string `json:"username" binding:"required"`
	FullName string `json:"full_name"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

// POST /api/admin/users
func AdminCreateUser(c *gin.Context) {
	var in CreateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	role := in.Role
	if role == "" {
		role = models.RoleStaff
	}
	if role != models.RoleAdmin && role != models.RoleStaff {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}

	var cnt int64
	config.DB.Model(&models.User{}).Where("username = ?", in.Username).Count(&cnt)
	if cnt > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username already taken"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	user := models.User{
		Username:     in.Username,
		FullName:     in.FullName,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	recordAudit(c, "CREATE", "user", user.ID, gin.H{"username": user.Username, "role": user.Role})
	utils.Success(c, "user created", user)
}

type UpdateUserInput struct {
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// PUT /api/admin/users/:id
func AdminUpdateUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var in UpdateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, uint(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]any{}
	if in.FullName != nil {
		updates["full_name"] = *in.FullName
	}
	if in.Role != nil {
		if *in.Role != models.RoleAdmin && *in.Role != models.RoleStaff {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
			return
		}
		updates["role"] = *in.Role
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	recordAudit(c, "UPDATE", "user", user.ID, updates)
	utils.Success(c, "user updated", user)
}

type SetPermissionsInput struct {
	PermissionIDs []uint `json:"permission_ids"`
}

// PUT /api/admin/users/:id/permissions — replaces the user's grant set.
func AdminSetUserPermissions(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var in SetPermissionsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	var user models.User
	if err := config.DB.First(&user, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.UserPermission{}).Error; err != nil {
			return err
		}
		now := time.Now().UTC()
		for _, pid := range in.PermissionIDs {
			var cnt int64
			if err := tx.Model(&models.Permission{}).Where("id = ?", pid).Count(&cnt).Error; err != nil {
				return err
			}
			if cnt == 0 {
				return businessErrf("permission %d not found", pid)
			}
			if err := tx.Create(&models.UserPermission{
				UserID:       user.ID,
				PermissionID: pid,
				GrantedAt:    now,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isBusinessError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	recordAudit(c, "UPDATE", "user_permissions", user.ID, in.PermissionIDs)
	utils.Success(c, "permissions updated", nil)
}

// GET /api/admin/permissions
func AdminListPermissions(c *gin.Context) {
	var perms []models.Permission
	if err := config.DB.Order("code").Find(&perms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	utils.Success(c, "permissions", perms)
}
