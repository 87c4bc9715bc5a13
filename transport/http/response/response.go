package response

import (
	"encoding/json"
	"net/http"
	"resalab/shared/constant"
	"resalab/shared/failure"
	"resalab/shared/logger"
	"strconv"
	"sync/atomic"
)

const defaultApplicationName = "resalabApp"

var applicationName atomic.Pointer[string]

type Error struct {
	Error *string `json:"error,omitempty"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// SetApplicationName sets the name used in alert header names and alert keys.
func SetApplicationName(name string) {
	if name == "" {
		name = defaultApplicationName
	}

	applicationName.Store(&name)
}

func ApplicationName() string {
	if name := applicationName.Load(); name != nil {
		return *name
	}

	return defaultApplicationName
}

// HeaderName returns the application header for suffix, e.g. X-resalabApp-alert.
func HeaderName(suffix string) string {
	return "X-" + ApplicationName() + "-" + suffix
}

// Alert describes the outcome of a write for the client.
type Alert struct {
	Entity  string
	Key     string
	Param   string
	failure bool
}

func EntityCreated(entity string, id int64) Alert {
	return Alert{Entity: entity, Key: constant.AlertKeyCreated, Param: strconv.FormatInt(id, 10)}
}

func EntityUpdated(entity string, id int64) Alert {
	return Alert{Entity: entity, Key: constant.AlertKeyUpdated, Param: strconv.FormatInt(id, 10)}
}

func EntityDeleted(entity string, id int64) Alert {
	return Alert{Entity: entity, Key: constant.AlertKeyDeleted, Param: strconv.FormatInt(id, 10)}
}

// Failure builds the alert of a rejected request, e.g. Failure("reservation", "idexists").
func Failure(entity, key string) Alert {
	return Alert{Entity: entity, Key: key, Param: entity, failure: true}
}

// header names keep their exact case, clients match them literally
func (a Alert) apply(header http.Header) {
	if a.failure {
		header[HeaderName(constant.ResponseHeaderError)] = []string{"error." + a.Key}
		header[HeaderName(constant.ResponseHeaderParams)] = []string{a.Param}

		return
	}

	header[HeaderName(constant.ResponseHeaderAlert)] = []string{ApplicationName() + "." + a.Entity + "." + a.Key}
	header[HeaderName(constant.ResponseHeaderParams)] = []string{a.Param}
}

// WithCreated sends 201 with the resource location, the alert and the created entity
func WithCreated(writer http.ResponseWriter, location string, alert Alert, payload any) {
	writer.Header().Set(constant.ResponseHeaderLocation, location)
	WithEntity(writer, http.StatusCreated, alert, payload)
}

// WithEntity sends an entity body along with an alert
func WithEntity(writer http.ResponseWriter, code int, alert Alert, payload any) {
	alert.apply(writer.Header())
	response(writer, code, payload)
}

// WithAlert sends an alert without a body
func WithAlert(writer http.ResponseWriter, code int, alert Alert) {
	alert.apply(writer.Header())
	writer.WriteHeader(code)
}

// WithFailureAlert sends 400 with a failure alert and no body
func WithFailureAlert(writer http.ResponseWriter, alert Alert) {
	alert.failure = true
	WithAlert(writer, http.StatusBadRequest, alert)
}

// WithNotFound sends 404 without a body
func WithNotFound(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNotFound)
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

// WithJSON sends the payload as the whole body
func WithJSON(writer http.ResponseWriter, code int, jsonPayload any) {
	response(writer, code, jsonPayload)
}

// WithError sends a response with an error message
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)
	errMsg := err.Error()

	response(writer, code, Error{Error: &errMsg})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
