// Package i18n holds the user-facing strings of the console in every
// supported language. Vietnamese is the default, English the fallback.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	InvalidCredentials = "invalid_credentials"
	LoginFailed        = "login_failed"
	DemoLoginFailed    = "demo_login_failed"
	LoginSucceeded     = "login_succeeded"
	LoggedOut          = "logged_out"
	TooManyAttempts    = "too_many_attempts"
	SessionResolving   = "session_resolving"
	NotLoggedIn        = "not_logged_in"
	SectionForbidden   = "section_forbidden"
)

var supported = []language.Tag{language.Vietnamese, language.English}

var entries = map[string]map[language.Tag]string{
	InvalidCredentials: {
		language.Vietnamese: "Tài khoản hoặc mật khẩu không đúng",
		language.English:    "Invalid username or password",
	},
	LoginFailed: {
		language.Vietnamese: "Đăng nhập thất bại",
		language.English:    "Login failed",
	},
	DemoLoginFailed: {
		language.Vietnamese: "Đăng nhập demo thất bại",
		language.English:    "Demo login failed",
	},
	LoginSucceeded: {
		language.Vietnamese: "Đăng nhập thành công!",
		language.English:    "Signed in successfully!",
	},
	LoggedOut: {
		language.Vietnamese: "Đã đăng xuất",
		language.English:    "Signed out",
	},
	TooManyAttempts: {
		language.Vietnamese: "Quá nhiều lần thử, vui lòng thử lại sau",
		language.English:    "Too many attempts, please try again later",
	},
	SessionResolving: {
		language.Vietnamese: "Đang kiểm tra phiên đăng nhập",
		language.English:    "Session is still being resolved",
	},
	NotLoggedIn: {
		language.Vietnamese: "Bạn chưa đăng nhập",
		language.English:    "You are not signed in",
	},
	SectionForbidden: {
		language.Vietnamese: "Bạn không có quyền truy cập mục này",
		language.English:    "You do not have access to this section",
	},
}

var cat = buildCatalog()

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, byLang := range entries {
		for tag, msg := range byLang {
			if err := b.SetString(tag, key, msg); err != nil {
				panic("i18n: " + err.Error())
			}
		}
	}
	return b
}

// Localizer renders message keys in one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a Localizer for the best supported match of locale
// (a BCP 47 tag such as "vi", "en-US"). Unknown locales fall back to Vietnamese.
func New(locale string) *Localizer {
	tag := Match(locale)
	return &Localizer{tag: tag, printer: message.NewPrinter(tag, message.Catalog(cat))}
}

// Match picks the supported language closest to locale.
func Match(locale string) language.Tag {
	want, err := language.Parse(locale)
	if err != nil {
		return supported[0]
	}
	_, idx, conf := language.NewMatcher(supported).Match(want)
	if conf == language.No {
		return supported[0]
	}
	return supported[idx]
}

// Language returns the tag this Localizer renders.
func (l *Localizer) Language() language.Tag {
	return l.tag
}

// Text renders key, formatting args into it when the message has verbs.
func (l *Localizer) Text(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}
