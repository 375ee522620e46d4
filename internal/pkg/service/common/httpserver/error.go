package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/iancoleman/strcase"
	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/otel/attribute"

	"github.com/keboola/config-features/internal/pkg/idgenerator"
	"github.com/keboola/config-features/internal/pkg/log"
	svcerrors "github.com/keboola/config-features/internal/pkg/service/common/errors"
	"github.com/keboola/config-features/internal/pkg/service/common/httpserver/middleware"
	"github.com/keboola/config-features/internal/pkg/utils/errors"
)

const (
	DefaultErrorName    = "internalError"
	DefaultErrorMessage = "Application error. Please contact our support with exception id (%s) attached."
)

type ErrorResponse struct {
	StatusCode  int     `json:"statusCode"`
	Name        string  `json:"error"`
	Message     string  `json:"message"`
	ExceptionID *string `json:"exceptionId,omitempty"`
}

type ErrorWriter struct {
	logger          log.Logger
	errorNamePrefix string
}

func NewErrorWriter(logger log.Logger, errorNamePrefix string) ErrorWriter {
	return ErrorWriter{logger: logger, errorNamePrefix: errorNamePrefix}
}

func (wr ErrorWriter) WriteWithStatusCode(ctx context.Context, w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(svcerrors.HTTPCodeFrom(err))
	_ = wr.WriteOrErr(ctx, w, err)
}

func (wr ErrorWriter) WriteOrErr(ctx context.Context, w http.ResponseWriter, err error) error {
	requestID, ok := middleware.RequestIDFromContext(ctx)
	if !ok {
		requestID = idgenerator.RequestID()
	}

	response := &ErrorResponse{
		StatusCode: svcerrors.HTTPCodeFrom(err),
		Name:       DefaultErrorName,
		Message:    err.Error(),
	}

	var nameProvider svcerrors.WithName
	if errors.As(err, &nameProvider) {
		response.Name = nameProvider.ErrorName()
	}

	// Normalize error name, e.g., "missing_field" to "dino.missingField"
	if !strings.Contains(response.Name, ".") {
		response.Name = wr.errorNamePrefix + strcase.ToLowerCamel(response.Name)
	}

	if response.StatusCode > 499 {
		v := requestID
		response.ExceptionID = &v
	}

	var messageProvider svcerrors.WithUserMessage
	switch {
	case errors.As(err, &messageProvider):
		response.Message = messageProvider.ErrorUserMessage()
	case response.StatusCode > 499:
		response.Message = fmt.Sprintf(DefaultErrorMessage, *response.ExceptionID)
	}

	var logEnabledProvider svcerrors.WithErrorLogEnabled
	if !errors.As(err, &logEnabledProvider) || logEnabledProvider.ErrorLogEnabled() {
		attrs := []attribute.KeyValue{attribute.String("error.name", response.Name)}
		if response.ExceptionID != nil {
			attrs = append(attrs, attribute.String("exceptionId", *response.ExceptionID))
		}
		logger := wr.logger.With(attrs...)
		if response.StatusCode > 499 {
			logger.Error(ctx, err.Error())
		} else {
			logger.Info(ctx, err.Error())
		}
	}

	body, encErr := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(response, "", "  ")
	if encErr != nil {
		return encErr
	}
	_, err = w.Write(append(body, '\n'))
	return err
}
