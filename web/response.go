package web

import "github.com/gin-gonic/gin"

// Every endpoint answers with the same envelope: {"data": ...} on
// success, {"error": {"message", "code"}} on failure. Clients surface
// the message verbatim and map codes to localized strings.

type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Error codes clients branch on.
const (
	CodeInvalidInput        = "INVALID_INPUT"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeInvalidOTP          = "INVALID_OTP"
	CodeOTPExpired          = "OTP_EXPIRED"
	CodeEmailTaken          = "EMAIL_TAKEN"
	CodeWeakPassword        = "WEAK_PASSWORD"
	CodeProductNotFound     = "PRODUCT_NOT_FOUND"
	CodeVariantNotFound     = "VARIANT_NOT_FOUND"
	CodeOutOfStock          = "OUT_OF_STOCK"
	CodeCartEmpty           = "CART_EMPTY"
	CodeCartItemNotFound    = "CART_ITEM_NOT_FOUND"
	CodePromoInvalid        = "PROMO_INVALID"
	CodePromoExpired        = "PROMO_EXPIRED"
	CodePromoMinSubtotal    = "PROMO_MIN_SUBTOTAL"
	CodeAddressLimit        = "ADDRESS_LIMIT_REACHED"
	CodeAddressNotFound     = "ADDRESS_NOT_FOUND"
	CodeImageLimit          = "IMAGE_LIMIT_REACHED"
	CodeCategoryNotFound    = "CATEGORY_NOT_FOUND"
	CodeCategoryCycle       = "CATEGORY_CYCLE"
	CodeOrderNotFound       = "ORDER_NOT_FOUND"
	CodeOrderNotCancellable = "ORDER_NOT_CANCELLABLE"
	CodeInternal            = "INTERNAL"
)

func Data(c *gin.Context, status int, v interface{}) {
	c.JSON(status, gin.H{"data": v})
}

func Error(c *gin.Context, status int, message, code string) {
	c.JSON(status, gin.H{"error": ErrorBody{Message: message, Code: code}})
}

// AbortError is Error plus c.Abort, for middleware.
func AbortError(c *gin.Context, status int, message, code string) {
	c.AbortWithStatusJSON(status, gin.H{"error": ErrorBody{Message: message, Code: code}})
}
