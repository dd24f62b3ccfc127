// Copyright (c) 2026 GroupMela. All rights reserved.

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Directory: View sizing and confirmation phrases for destructive actions.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "groupmela-admin"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	// The notification stream opts out of this per-connection.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	// Applied to every API route except the notification stream, which must
	// hold its connection open.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in admin session JWTs.
	AuthIssuer = "admin.groupmela.com"

	// AdminSessionTTL bounds how long an admin session token stays valid.
	AdminSessionTTL = 12 * time.Hour
)

// # Directory Views

const (
	// RecentGroupsLimit is the number of rows in the dashboard "recent groups" view.
	RecentGroupsLimit = 5

	// ActivityHistogramDays is the span of the dashboard creation-activity chart.
	ActivityHistogramDays = 7
)

// # Destructive Actions

const (
	// WipeConfirmationPhrase must be typed literally before the store is wiped.
	WipeConfirmationPhrase = "DELETE"
)

// # Notifications

const (
	// NotificationTTL is how long a toast stays visible before it self-removes.
	NotificationTTL = 3 * time.Second
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
)

// # Redis Prefixes

const (
	RedisPrefixSession    = "admin:session:"
	RedisPrefixCollection = "groupmela:col:"
	RedisPrefixChanges    = "groupmela:changes:"
)
