package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/uknf/communication-platform-backend/pkg/i18n"
)

const (
	localeKey = "locale"
	bundleKey = "i18nBundle"
)

// I18n middleware detects the client's preferred language from Accept-Language header
// and stores it, together with the message bundle, in the gin context.
func I18n(bundle *i18n.Bundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Accept-Language")
		locale := i18n.ParseAcceptLanguage(header)
		c.Set(localeKey, locale)
		c.Set(bundleKey, bundle)
		c.Header("Content-Language", string(locale))
		c.Next()
	}
}

// Translate resolves a message key in the request's locale. Falls back to the
// key itself when no bundle is installed (bare routers in tests).
func Translate(c *gin.Context, key string, args ...interface{}) string {
	if v, exists := c.Get(bundleKey); exists {
		if bundle, ok := v.(*i18n.Bundle); ok {
			return bundle.T(GetLocale(c), key, args...)
		}
	}
	return key
}

// GetLocale returns the locale from the gin context (set by I18n middleware)
func GetLocale(c *gin.Context) i18n.Locale {
	if v, exists := c.Get(localeKey); exists {
		if locale, ok := v.(i18n.Locale); ok {
			return locale
		}
	}
	return i18n.LocalePl
}
