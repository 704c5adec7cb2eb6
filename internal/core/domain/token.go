package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DemoTokenPrefix marks locally minted tokens. They are never sent to, or
// validated against, the platform API.
const DemoTokenPrefix = "demo-token-"

// IsDemoToken reports whether token was minted by a demo login.
func IsDemoToken(token string) bool {
	return strings.HasPrefix(token, DemoTokenPrefix)
}

// NewDemoToken mints a demo token. The millisecond timestamp keeps tokens
// sortable; the uuid suffix keeps two calls within one millisecond distinct.
func NewDemoToken(now time.Time) string {
	return fmt.Sprintf("%s%d-%s", DemoTokenPrefix, now.UnixMilli(), uuid.NewString())
}

// DemoUser builds the fixed administrator profile used by demo logins.
func DemoUser(now time.Time) *User {
	return &User{
		ID:         1,
		Email:      "anhnd@demo.com",
		FullName:   "Anh Nguyen (Demo)",
		Role:       RoleAdmin,
		IsActive:   true,
		IsVerified: true,
		CreatedAt:  NewTimestamp(now),
	}
}
