// internal/common/errors/handler.go
package errors

// ErrorHandler turns a pipeline failure into a log line, a metric and an exit code.
type ErrorHandler struct {
	logger   Logger
	recorder FailureRecorder
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// FailureRecorder receives the code of every handled failure.
type FailureRecorder interface {
	RecordFailure(code string)
}

func NewErrorHandler(logger Logger, recorder FailureRecorder) *ErrorHandler {
	return &ErrorHandler{logger: logger, recorder: recorder}
}

// HandleError normalizes err, logs it with full context and returns the exit
// code the process must terminate with. A nil error returns ExitSuccess.
func (h *ErrorHandler) HandleError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	stdErr := AsStandardError(err)
	h.logError(stdErr)

	if h.recorder != nil {
		h.recorder.RecordFailure(string(stdErr.Code))
	}

	return ExitCode(stdErr)
}

func (h *ErrorHandler) logError(stdErr *StandardError) {
	fields := map[string]interface{}{
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	for k, v := range stdErr.Metadata {
		fields["meta."+k] = v
	}
	if stdErr.Cause != nil {
		fields["cause"] = stdErr.Cause.Error()
	}
	h.logger.Error("prediction failed", fields)
}
