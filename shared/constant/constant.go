package constant

import (
	"time"
)

const (
	RequestParamPage = "page"
	RequestParamSize = "size"
	RequestParamSort = "sort"
)

const (
	RequestParamID = "id"
)

const (
	DefaultValuePage = 0
	DefaultValueSize = 20
	MaxValueSize     = 2000
)

const (
	FieldID         = "id"
	FieldCreatedAt  = "created_at"
	FieldModifiedAt = "modified_at"
)

const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeFkViolation     = "23503"
	PqErrorCodeCheckViolation  = "23514"
)

const (
	DateFormat = time.RFC3339
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"

	OtelQueryAttributeKey = "query"
)

const (
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderRequestID          = "X-Request-ID"
	RequestHeaderForwardedFor       = "X-Forwarded-For"
	RequestHeaderRealIP             = "X-Real-IP"
)

const (
	ResponseHeaderLocation   = "Location"
	ResponseHeaderLink       = "Link"
	ResponseHeaderTotalCount = "X-Total-Count"
	ResponseHeaderAlert      = "alert"
	ResponseHeaderError      = "error"
	ResponseHeaderParams     = "params"
)

const (
	ContentTypeJSON = "application/json"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
	ResponseMessageOK                 = "OK"
)

const (
	AlertKeyIDExists = "idexists"
	AlertKeyCreated  = "created"
	AlertKeyUpdated  = "updated"
	AlertKeyDeleted  = "deleted"
)

const (
	ServerEnvDevelopment = "development"
	ServerEnvProduction  = "production"
)

const (
	Asterix = "*"
	Empty   = ""
)
