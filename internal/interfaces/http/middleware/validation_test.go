package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erpsuite/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lineInput struct {
	Quantity int `json:"quantity" binding:"gt=0"`
}

type orderInput struct {
	Code  string      `json:"code" binding:"required,max=5"`
	Email string      `json:"email" binding:"omitempty,email"`
	Lines []lineInput `json:"lines" binding:"required,min=1,dive"`
}

func TestValidationDetails(t *testing.T) {
	SetupValidator()

	var details []dto.ValidationDetail
	router := gin.New()
	router.POST("/orders", func(c *gin.Context) {
		var in orderInput
		err := c.ShouldBindJSON(&in)
		details = ValidationDetails(err)
		c.Status(http.StatusOK)
	})

	body := `{"code":"TOOLONG","email":"nope","lines":[{"quantity":0}]}`
	serve(router, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body)))

	require.Len(t, details, 3)
	got := map[string]string{}
	for _, d := range details {
		got[d.Field] = d.Message
	}
	assert.Equal(t, "Must be at most 5 characters", got["code"])
	assert.Equal(t, "Invalid email format", got["email"])
	assert.Equal(t, "Must be greater than 0", got["lines[0].quantity"])
}

func TestValidationDetails_NonValidatorError(t *testing.T) {
	assert.Nil(t, ValidationDetails(assert.AnError))
	assert.Nil(t, ValidationDetails(nil))
}
