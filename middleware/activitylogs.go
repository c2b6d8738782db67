package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"slices"

	"github.com/gin-gonic/gin"
	activitylogs "github.com/yacinecs/wallet-backend/services/activity_logs"
	"github.com/yacinecs/wallet-backend/utils"
)

type ActivityLogMiddleware struct {
	activity *activitylogs.ActivityLog
}

func NewActivityLogMiddleware(activity *activitylogs.ActivityLog) *ActivityLogMiddleware {
	return &ActivityLogMiddleware{
		activity: activity,
	}
}

func (a *ActivityLogMiddleware) ActivityLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !shouldLog(c.FullPath()) {
			c.Next()
			return
		}

		// Process request first
		c.Next()

		// Get user from context if authenticated
		var userID *int64
		if tokenUser, err := utils.GetActiveUser(c); err == nil {
			userID = &tokenUser.UserID
		}

		method := c.Request.Method
		fullPath := c.FullPath()
		clientIP := c.ClientIP()
		userAgent := c.Request.UserAgent()

		// Create log in background to not block the response
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			createdAt := time.Now()

			var action string
			if userID != nil {
				action = actionFromRequest(method, fullPath, *userID)
			} else {
				action = fmt.Sprintf("unauthenticated %s to %s", method, fullPath)
			}
			_, _ = a.activity.Create(ctx, activitylogs.CreateActivityLogParams{
				UserID:    userID,
				Action:    action,
				IPAddress: clientIP,
				UserAgent: userAgent,
				CreatedAt: createdAt,
			})
		}()
	}
}

func shouldLog(path string) bool {
	// Routes whose activity gets an audit trail. Should stay in sync
	// with the cases in actionFromRequest.
	loggedPaths := []string{
		"/api/v1/auth/register",
		"/api/v1/auth/login",
		"/api/v1/auth/logout",
		"/api/v1/wallet/add",
		"/api/v1/wallet/subtract",
		"/api/v1/transfer",
		"/api/v1/blockchain/custodial/send",
		"/api/v1/blockchain/deposit",
	}
	return slices.Contains(loggedPaths, path)
}

func actionFromRequest(method, fullPath string, userID int64) string {
	switch {
	case method == http.MethodPost && fullPath == "/api/v1/auth/login":
		return fmt.Sprintf("user %d logged in", userID)
	case method == http.MethodPost && fullPath == "/api/v1/auth/register":
		return fmt.Sprintf("user %d registered", userID)
	case method == http.MethodPost && fullPath == "/api/v1/auth/logout":
		return fmt.Sprintf("user %d logged out", userID)
	case method == http.MethodPost && fullPath == "/api/v1/wallet/add":
		return fmt.Sprintf("user %d credited their wallet", userID)
	case method == http.MethodPost && fullPath == "/api/v1/wallet/subtract":
		return fmt.Sprintf("user %d debited their wallet", userID)
	case method == http.MethodPost && fullPath == "/api/v1/transfer":
		return fmt.Sprintf("user %d transferred funds", userID)
	case method == http.MethodPost && fullPath == "/api/v1/blockchain/custodial/send":
		return fmt.Sprintf("user %d requested a custodial send", userID)
	case method == http.MethodPost && fullPath == "/api/v1/blockchain/deposit":
		return fmt.Sprintf("user %d recorded a chain deposit", userID)
	default:
		return method + " " + fullPath
	}
}
