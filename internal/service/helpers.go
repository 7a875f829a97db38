package service

import (
	"context"
	"fmt"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/fairly/internal/auth"
	"github.com/mmynk/fairly/internal/middleware"
	"github.com/mmynk/fairly/internal/models"
	"github.com/mmynk/fairly/internal/storage"
)

// requireUser returns the authenticated caller's ID.
func requireUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

// requireMember loads the group and checks that userID belongs to it.
func requireMember(ctx context.Context, groups storage.GroupStore, groupID, userID string) (*models.Group, error) {
	if groupID == "" {
		return nil, fmt.Errorf("group %w", ErrMissingID)
	}
	group, err := groups.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("group %s: %w", groupID, err)
	}
	ok, err := groups.IsGroupMember(ctx, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if !ok {
		return nil, ErrNotMember
	}
	return group, nil
}

// validateDate accepts an empty date (the store defaults it) or YYYY-MM-DD.
func validateDate(date string) error {
	if date == "" {
		return nil
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}
