package endpoint

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/asrdrop/errors"
	"github.com/kbukum/asrdrop/transcription"
)

// RespondWithError inspects err: if it is an *apperrors.AppError the status and
// structured body are derived automatically; otherwise a generic 500 is sent.
func RespondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Unexpected(err)
	}
	c.Abort()
	c.PureJSON(appErr.HTTPStatus, appErr.ToResponse())
}

// RespondResult writes a transcription result: 200 with the success
// payload, or the error's status with its envelope.
func RespondResult(c *gin.Context, res transcription.Result) {
	if !res.OK() {
		err := res.Err()
		if err == nil {
			err = apperrors.Unexpected(nil)
		}
		RespondWithError(c, err)
		return
	}
	data, err := res.MarshalJSON()
	if err != nil {
		RespondWithError(c, apperrors.Unexpected(err))
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}
