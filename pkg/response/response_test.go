package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "marketplace/pkg/errors"
)

func render(t *testing.T, err error) (int, Response) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, Error(c, err))

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestError_AppError(t *testing.T) {
	code, body := render(t, apperrors.NotFound("Conversation", nil))
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, body.Success)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
	assert.Equal(t, "Conversation not found", body.Error.Message)
}

func TestError_RetryAfterRoundsUp(t *testing.T) {
	code, body := render(t, apperrors.TooManyRequests("slow down", 1500*time.Millisecond))
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.Equal(t, 2, body.Error.RetryAfter)
}

func TestError_Validation(t *testing.T) {
	type req struct {
		Percentage int `validate:"min=1,max=100"`
	}
	err := validator.New().Struct(req{Percentage: 500})

	code, body := render(t, err)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "percentage must be at most 100", body.Error.Message)
}

func TestError_Unknown(t *testing.T) {
	code, body := render(t, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
}

func TestPaginated(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, Paginated(c, []string{"a", "b"}, 5, 1, 2))
	assert.Contains(t, rec.Body.String(), `"totalPages":3`)
}
