package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyPrefix     = "user:%d"
	postSlugKeyPrefix = "post:slug:%s"
	projectKeyPrefix  = "project:slug:%s"
)

const (
	// UserTTL bounds staleness of cached user records.
	UserTTL = 5 * time.Minute
	// PostTTL bounds staleness of cached public post detail.
	PostTTL = 10 * time.Minute
	// ProjectTTL bounds staleness of cached public project detail.
	ProjectTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func PostSlugKey(slug string) string {
	return fmt.Sprintf(postSlugKeyPrefix, slug)
}

func ProjectSlugKey(slug string) string {
	return fmt.Sprintf(projectKeyPrefix, slug)
}

// Invalidate removes a key; a nil client makes this a no-op.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidatePost(ctx context.Context, slug string) {
	Invalidate(ctx, PostSlugKey(slug))
}

func InvalidateProject(ctx context.Context, slug string) {
	Invalidate(ctx, ProjectSlugKey(slug))
}
