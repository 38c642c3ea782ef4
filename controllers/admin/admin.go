package adminController

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/controllers/respond"
	"github.com/junaidrashid-git/storefront-api/ledger"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type UpdateUserRequest struct {
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// GET /admin/users?role=seller
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.WithContext(c.Request.Context()).Order("created_at desc")
		if role := c.Query("role"); role != "" {
			query = query.Where("role = ?", role)
		}

		users := []models.User{}
		if err := query.Find(&users).Error; err != nil {
			log.Error().Err(err).Msg("❌ Failed to fetch users")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users", "code": "internal"})
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

// UpdateUser changes a user's role or activation flag.
// PUT /admin/users/:id
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := respond.IDParam(c, "id")
		if !ok {
			return
		}

		var req UpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.BadRequest(c, "Invalid input: "+err.Error())
			return
		}

		updates := map[string]interface{}{}
		if req.Role != nil {
			switch role := models.Role(*req.Role); role {
			case models.RoleUser, models.RoleSeller, models.RoleAdmin:
				updates["role"] = role
			default:
				respond.BadRequest(c, "Role must be one of user, seller, admin")
				return
			}
		}
		if req.IsActive != nil {
			updates["is_active"] = *req.IsActive
		}
		if len(updates) == 0 {
			respond.BadRequest(c, "No valid update fields provided (role, is_active)")
			return
		}

		db := db.WithContext(c.Request.Context())
		res := db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			respond.Error(c, res.Error)
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found", "code": "not_found"})
			return
		}

		var user models.User
		if err := db.First(&user, id).Error; err != nil {
			respond.Error(c, err)
			return
		}
		log.Info().Uint("user_id", id).Interface("changes", updates).Msg("👤 User updated by admin")
		c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": user})
	}
}

// DeleteUser removes an account and returns its cart to stock. Admins cannot
// delete themselves here.
// DELETE /admin/users/:id
func DeleteUser(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := respond.IDParam(c, "id")
		if !ok {
			return
		}
		if adminID, _ := middleware.CurrentUserID(c); adminID == id {
			respond.BadRequest(c, "Cannot delete your own account via this interface")
			return
		}

		if err := l.DeleteUser(c.Request.Context(), id); err != nil {
			if errors.Is(err, ledger.ErrConflict) {
				c.JSON(http.StatusConflict, gin.H{"error": "Seller still has products, delete them first", "code": ledger.Code(err)})
				return
			}
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}
