package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/web"
)

type addressInput struct {
	Label      string `json:"label"`
	FullName   string `json:"full_name" binding:"required"`
	Phone      string `json:"phone"`
	Country    string `json:"country" binding:"required"`
	State      string `json:"state"`
	City       string `json:"city" binding:"required"`
	Street     string `json:"street" binding:"required"`
	PostalCode string `json:"postal_code"`
	IsDefault  bool   `json:"is_default"`
}

// GET /api/v1/users/me/addresses
func ListAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var addresses []models.Address
		if err := db.Where("user_id = ?", userID).
			Order("created_at ASC").Find(&addresses).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to fetch addresses", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusOK, addresses)
	}
}

// POST /api/v1/users/me/addresses
//
// The address book holds at most 5 entries; the 6th insert is rejected
// before anything is written.
func CreateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var input addressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			web.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error(), web.CodeInvalidInput)
			return
		}

		var count int64
		if err := db.Model(&models.Address{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to check address book", web.CodeInternal)
			return
		}
		if count >= models.MaxAddresses {
			web.Error(c, http.StatusUnprocessableEntity,
				"You can save at most 5 addresses", web.CodeAddressLimit)
			return
		}

		address := models.Address{
			UserID:     userID.(string),
			Label:      input.Label,
			FullName:   input.FullName,
			Phone:      input.Phone,
			Country:    input.Country,
			State:      input.State,
			City:       input.City,
			Street:     input.Street,
			PostalCode: input.PostalCode,
			IsDefault:  input.IsDefault || count == 0, // first address becomes default
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if address.IsDefault {
				if err := tx.Model(&models.Address{}).Where("user_id = ?", userID).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}
			return tx.Create(&address).Error
		})
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to save address", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusCreated, address)
	}
}

// PUT /api/v1/users/me/addresses/:id
func UpdateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var address models.Address
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).
			First(&address).Error; err != nil {
			web.Error(c, http.StatusNotFound, "Address not found", web.CodeAddressNotFound)
			return
		}

		var input addressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			web.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error(), web.CodeInvalidInput)
			return
		}

		address.Label = input.Label
		address.FullName = input.FullName
		address.Phone = input.Phone
		address.Country = input.Country
		address.State = input.State
		address.City = input.City
		address.Street = input.Street
		address.PostalCode = input.PostalCode

		err := db.Transaction(func(tx *gorm.DB) error {
			if input.IsDefault && !address.IsDefault {
				if err := tx.Model(&models.Address{}).Where("user_id = ?", userID).
					Update("is_default", false).Error; err != nil {
					return err
				}
				address.IsDefault = true
			}
			return tx.Save(&address).Error
		})
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to update address", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusOK, address)
	}
}

// DELETE /api/v1/users/me/addresses/:id
//
// Deleting the default promotes the oldest remaining address.
func DeleteAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var address models.Address
		if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).
			First(&address).Error; err != nil {
			web.Error(c, http.StatusNotFound, "Address not found", web.CodeAddressNotFound)
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&address).Error; err != nil {
				return err
			}
			if !address.IsDefault {
				return nil
			}
			var next models.Address
			err := tx.Where("user_id = ?", userID).Order("created_at ASC").First(&next).Error
			if err == gorm.ErrRecordNotFound {
				return nil
			}
			if err != nil {
				return err
			}
			return tx.Model(&next).Update("is_default", true).Error
		})
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to delete address", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusOK, gin.H{"message": "Address deleted"})
	}
}
