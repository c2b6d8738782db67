package activitylogs

import (
	"context"
	"database/sql"
	"net"
	"time"

	db "github.com/yacinecs/wallet-backend/db/sqlc"
	"github.com/sqlc-dev/pqtype"
)

type ActivityLog struct {
	store *db.Store
}

func NewActivityLog(store *db.Store) *ActivityLog {
	return &ActivityLog{
		store: store,
	}
}

type CreateActivityLogParams struct {
	UserID     *int64
	Action     string
	EntityType *string
	EntityID   *int64
	IPAddress  string
	UserAgent  string
	CreatedAt  time.Time
}

func (a *ActivityLog) Create(ctx context.Context, params CreateActivityLogParams) (db.ActivityLog, error) {
	return a.store.Queries.CreateActivityLog(ctx, db.CreateActivityLogParams{
		UserID:     toNullInt64(params.UserID),
		Action:     params.Action,
		EntityType: toNullString(params.EntityType),
		EntityID:   toNullInt64(params.EntityID),
		IpAddress:  toInet(params.IPAddress),
		UserAgent:  toNullString(&params.UserAgent),
		CreatedAt:  params.CreatedAt,
	})
}

func (r *ActivityLog) GetByUser(ctx context.Context, userID int64, limit, offset int32) ([]db.ActivityLog, error) {
	return r.store.GetActivityLogsByUser(ctx, db.GetActivityLogsByUserParams{
		UserID: toNullInt64(&userID),
		Limit:  limit,
		Offset: offset,
	})
}

func (r *ActivityLog) GetRecent(ctx context.Context, limit, offset int32) ([]db.ActivityLog, error) {
	return r.store.GetRecentActivityLogs(ctx, db.GetRecentActivityLogsParams{
		Limit:  limit,
		Offset: offset,
	})
}

// Helper functions
func toNullInt64(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}

func toNullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func toInet(ip string) pqtype.Inet {
	if ip == "" {
		return pqtype.Inet{Valid: false}
	}

	// Try parsing as CIDR (e.g., "192.168.1.0/24")
	if _, ipNet, err := net.ParseCIDR(ip); err == nil {
		return pqtype.Inet{
			IPNet: *ipNet,
			Valid: true,
		}
	}

	// Try parsing as a single IP address (e.g., "192.168.1.1")
	if parsedIP := net.ParseIP(ip); parsedIP != nil {
		// Convert to a CIDR with full mask (/32 for IPv4, /128 for IPv6)
		var mask net.IPMask
		if parsedIP.To4() != nil {
			mask = net.CIDRMask(32, 32) // IPv4
		} else {
			mask = net.CIDRMask(128, 128) // IPv6
		}
		ipNet := &net.IPNet{
			IP:   parsedIP,
			Mask: mask,
		}
		return pqtype.Inet{
			IPNet: *ipNet,
			Valid: true,
		}
	}

	// Invalid IP or CIDR, return invalid
	return pqtype.Inet{Valid: false}
}
