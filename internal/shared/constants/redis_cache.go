package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// This file centralizes all Redis cache keys, channels and TTL values.
// Pattern: venuelayout:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour // 24 hours - for templates
	TTL_STATIC_MEDIUM = 12 * time.Hour // 12 hours - for tier boundaries
)

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_LONG  = 4 * time.Hour    // 4 hours - for layouts
	TTL_SEMI_STATIC_QUICK = 15 * time.Minute // 15 minutes - for layout listings
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_SHORT = 5 * time.Minute // 5 minutes - for classification results
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "venuelayout"
)

// ================== LAYOUTS MODULE ==================

// Layout Cache Keys
const (
	CACHE_KEY_LAYOUT_DETAIL = CACHE_PREFIX + ":layouts:detail:uuid:" // + layout-id
	CACHE_KEY_LAYOUTS_LIST  = CACHE_PREFIX + ":layouts:list"         // + :page:X:limit:Y:status:Z

	// Pub/sub channel carrying saved and deleted layouts
	CHANNEL_LAYOUT_CHANGES = CACHE_PREFIX + ":layouts:changes:" // + layout-id
)

// Layout Cache TTLs
const (
	TTL_LAYOUT_DETAIL = TTL_SEMI_STATIC_LONG  // 4 hours
	TTL_LAYOUTS_LIST  = TTL_SEMI_STATIC_QUICK // 15 minutes
)

// ================== TIERS MODULE ==================

// Tier Cache Keys
const (
	CACHE_KEY_TIER_BOUNDARIES = CACHE_PREFIX + ":tiers:boundaries:event:" // + event-id
	CACHE_KEY_TIER_CLASSIFY   = CACHE_PREFIX + ":tiers:classify:event:"   // + event-id:layout:layout-id
)

// Tier Cache TTLs
const (
	TTL_TIER_BOUNDARIES = TTL_STATIC_MEDIUM // 12 hours
	TTL_TIER_CLASSIFY   = TTL_DYNAMIC_SHORT // 5 minutes
)

// ================== TEMPLATES MODULE ==================

const (
	CACHE_KEY_TEMPLATES_LIST = CACHE_PREFIX + ":templates:list"
	TTL_TEMPLATES_LIST       = TTL_STATIC_LONG // 24 hours
)

// ================== RATE LIMIT ==================

const (
	RATE_LIMIT_KEY_PREFIX = CACHE_PREFIX + ":ratelimit:" // + client-ip:limit-type
)

// ================== CACHE INVALIDATION PATTERNS ==================

// Patterns for cache invalidation (used with Redis KEYS command)
const (
	PATTERN_INVALIDATE_LAYOUTS_LIST = CACHE_KEY_LAYOUTS_LIST + "*"
	PATTERN_INVALIDATE_CLASSIFY     = CACHE_KEY_TIER_CLASSIFY + "*"
)

// ================== HELPER FUNCTIONS ==================

func BuildLayoutDetailKey(layoutID string) string {
	return CACHE_KEY_LAYOUT_DETAIL + layoutID
}

// BuildLayoutListKey example: "venuelayout:layouts:list:page:1:limit:20:status:draft:template:false"
func BuildLayoutListKey(page, limit int, status string, template *bool) string {
	key := fmt.Sprintf("%s:page:%d:limit:%d", CACHE_KEY_LAYOUTS_LIST, page, limit)
	if status != "" {
		key += ":status:" + status
	}
	if template != nil {
		key += fmt.Sprintf(":template:%t", *template)
	}
	return key
}

func BuildLayoutChannel(layoutID string) string {
	return CHANNEL_LAYOUT_CHANGES + layoutID
}

func BuildTierBoundariesKey(eventID string) string {
	return CACHE_KEY_TIER_BOUNDARIES + eventID
}

func BuildClassifyKey(eventID, layoutID string) string {
	return CACHE_KEY_TIER_CLASSIFY + eventID + ":layout:" + layoutID
}

func BuildRateLimitKey(clientIP, limitType string) string {
	return RATE_LIMIT_KEY_PREFIX + clientIP + ":" + limitType
}

// BuildClassifyPattern matches every cached classification of one event.
func BuildClassifyPattern(eventID string) string {
	return CACHE_KEY_TIER_CLASSIFY + eventID + ":*"
}
