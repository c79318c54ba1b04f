package endpoint

import (
	stderrors "errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/asrdrop/errors"
	"github.com/kbukum/asrdrop/transcription"
)

// TranscribeRequest is the optional JSON body of the transcription routes.
// Query parameters lang and keys are used when the body omits them.
type TranscribeRequest struct {
	Lang string `json:"lang"`
	Keys string `json:"keys"`
}

// Transcribe runs one invocation of p in the given mode against whatever
// is in the provider's input directory. Errors are answered with the
// status carried by the AppError and its JSON envelope.
func Transcribe(p transcription.Provider, mode transcription.Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body TranscribeRequest
		if err := c.ShouldBindJSON(&body); err != nil && !stderrors.Is(err, io.EOF) {
			RespondWithError(c, errors.Validation("invalid request body: "+err.Error()).WithCause(err))
			return
		}
		if body.Lang == "" {
			body.Lang = c.Query("lang")
		}
		if body.Keys == "" {
			body.Keys = c.Query("keys")
		}

		ctx := transcription.WithRequestID(c.Request.Context(), c.GetHeader("X-Request-Id"))
		res := p.Transcribe(ctx, transcription.Request{
			Language: body.Lang,
			Keys:     body.Keys,
			Mode:     mode,
		})
		RespondResult(c, res)
	}
}
