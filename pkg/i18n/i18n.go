// Package i18n holds the user-facing message catalog.
package i18n

import (
	"fmt"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
)

// Message keys
const (
	UserNotFound          = "user_not_found"
	ItemNotFound          = "item_not_found"
	MissingField          = "missing_field"
	InvalidBody           = "invalid_body"
	UserDeleted           = "user_deleted"
	ItemDeleted           = "item_deleted"
	Welcome               = "welcome"
	NotFoundTitle         = "not_found_title"
	NotFoundDetail        = "not_found_detail"
	MethodNotAllowedTitle = "method_not_allowed_title"
	MethodNotAllowed      = "method_not_allowed"
	InternalErrorTitle    = "internal_error_title"
	InternalErrorDetail   = "internal_error_detail"
	RateLimitTitle        = "rate_limit_title"
	RateLimitDetail       = "rate_limit_detail"
)

// DefaultLocale is used when no locale is configured
const DefaultLocale = "en"

var catalog = map[string]map[string]string{
	"en": {
		UserNotFound:          "user not found",
		ItemNotFound:          "item not found",
		MissingField:          "missing required field: {0}",
		InvalidBody:           "invalid request body",
		UserDeleted:           "user deleted",
		ItemDeleted:           "item deleted",
		Welcome:               "Welcome to the Home Page",
		NotFoundTitle:         "resource not found",
		NotFoundDetail:        "The requested URL was not found on the server.",
		MethodNotAllowedTitle: "method not allowed",
		MethodNotAllowed:      "{0} method is not supported for this path",
		InternalErrorTitle:    "internal server error",
		InternalErrorDetail:   "please try again later",
		RateLimitTitle:        "too many requests",
		RateLimitDetail:       "rate limit exceeded: {0} requests/second (burst capacity: {1})",
	},
	"zh": {
		UserNotFound:          "用户不存在",
		ItemNotFound:          "物品不存在",
		MissingField:          "缺少必要字段: {0}",
		InvalidBody:           "请求数据格式错误",
		UserDeleted:           "用户已删除",
		ItemDeleted:           "物品已删除",
		Welcome:               "欢迎访问首页",
		NotFoundTitle:         "未找到资源",
		NotFoundDetail:        "请求的URL在服务器上不存在",
		MethodNotAllowedTitle: "方法不允许",
		MethodNotAllowed:      "{0} 方法不支持该路径",
		InternalErrorTitle:    "服务器内部错误",
		InternalErrorDetail:   "请稍后重试",
		RateLimitTitle:        "请求过多",
		RateLimitDetail:       "请求过于频繁: 每秒 {0} 次 (突发容量: {1})",
	},
}

// Supported reports whether locale has a catalog
func Supported(locale string) bool {
	_, ok := catalog[locale]
	return ok
}

// Translator renders catalog messages for one locale.
type Translator struct {
	trans ut.Translator
}

// New builds a Translator for locale, falling back to English when the locale is unknown.
func New(locale string) (*Translator, error) {
	uni := ut.New(en.New(), en.New(), zh.New())

	if !Supported(locale) {
		locale = DefaultLocale
	}

	trans, _ := uni.GetTranslator(locale)
	for key, text := range catalog[locale] {
		if err := trans.Add(key, text, false); err != nil {
			return nil, fmt.Errorf("failed to add translation %q: %w", key, err)
		}
	}

	return &Translator{trans: trans}, nil
}

// Locale returns the locale of the translator
func (t *Translator) Locale() string {
	return t.trans.Locale()
}

// T renders key with positional params. Unknown keys render as the key itself.
func (t *Translator) T(key string, params ...string) string {
	s, err := t.trans.T(key, params...)
	if err != nil {
		return key
	}
	return s
}
