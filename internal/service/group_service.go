package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/fairly/internal/models"
	"github.com/mmynk/fairly/internal/storage"
	"github.com/mmynk/fairly/pkg/api"
	"github.com/mmynk/fairly/pkg/api/apiconnect"
)

var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// GroupService implements the Connect GroupService.
// Every call requires an authenticated caller; calls on an existing group
// also require the caller to be one of its members.
type GroupService struct {
	store    storage.Store
	logger   *slog.Logger
	observer SettlementObserver
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store, logger *slog.Logger) *GroupService {
	return &GroupService{store: store, logger: logger}
}

// WithSettlementObserver reports every balance computation to o.
func (s *GroupService) WithSettlementObserver(o SettlementObserver) *GroupService {
	s.observer = o
	return s
}

// CreateGroup creates a group with the caller as its first member.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, toConnectError(ErrMissingGroupName)
	}

	group := &models.Group{Name: name, CreatorID: userID}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		s.logger.Error("CreateGroup failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}
	members, err := s.store.ListGroupMembers(ctx, group.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	s.logger.Info("Group created", "group_id", group.ID, "creator_id", userID)
	return connect.NewResponse(&api.CreateGroupResponse{
		Group:   toAPIGroup(group),
		Members: toAPIMembers(members),
	}), nil
}

// GetGroup returns a group with its members.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	group, err := requireMember(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}
	members, err := s.store.ListGroupMembers(ctx, group.ID)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetGroupResponse{
		Group:   toAPIGroup(group),
		Members: toAPIMembers(members),
	}), nil
}

// ListGroups returns the groups the caller belongs to.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	groups, err := s.store.ListGroupsForUser(ctx, userID)
	if err != nil {
		s.logger.Error("ListGroups failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}

	out := make([]*api.Group, len(groups))
	for i, g := range groups {
		out[i] = toAPIGroup(g)
	}
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// UpdateGroup renames a group.
func (s *GroupService) UpdateGroup(ctx context.Context, req *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, toConnectError(ErrMissingGroupName)
	}
	group, err := requireMember(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	group.Name = name
	if err := s.store.UpdateGroup(ctx, group); err != nil {
		s.logger.Error("UpdateGroup failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Group updated", "group_id", group.ID)
	return connect.NewResponse(&api.UpdateGroupResponse{Group: toAPIGroup(group)}), nil
}

// DeleteGroup removes a group and all of its expenses. Only the creator may
// delete a group.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	group, err := requireMember(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if group.CreatorID != userID {
		return nil, toConnectError(ErrNotCreator)
	}

	if err := s.store.DeleteGroup(ctx, group.ID); err != nil {
		s.logger.Error("DeleteGroup failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Group deleted", "group_id", group.ID)
	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// AddMember adds an existing user, found by ID or email, to a group.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	group, err := requireMember(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}

	user, err := s.lookupUser(ctx, req.Msg.UserID, req.Msg.Email)
	if err != nil {
		return nil, toConnectError(err)
	}
	if err := s.store.AddGroupMember(ctx, group.ID, user.ID); err != nil {
		if !errors.Is(err, storage.ErrAlreadyExists) {
			s.logger.Error("AddMember failed", "group_id", group.ID, "user_id", user.ID, "error", err)
		}
		return nil, toConnectError(err)
	}

	members, err := s.store.ListGroupMembers(ctx, group.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	var added *api.Member
	for _, m := range toAPIMembers(members) {
		if m.UserID == user.ID {
			added = m
			break
		}
	}

	s.logger.Info("Member added", "group_id", group.ID, "user_id", user.ID, "added_by", userID)
	return connect.NewResponse(&api.AddMemberResponse{Member: added}), nil
}

func (s *GroupService) lookupUser(ctx context.Context, userID, email string) (*models.User, error) {
	var (
		user *models.User
		err  error
	)
	switch {
	case userID != "":
		user, err = s.store.GetUserByID(ctx, userID)
	case email != "":
		user, err = s.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	default:
		return nil, fmt.Errorf("user %w", ErrMissingID)
	}
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUnknownUser
	}
	return user, err
}

// RemoveMember takes a user out of a group. Expenses that involve the user
// stay recorded; balances ignore their shares from then on.
func (s *GroupService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	group, err := requireMember(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}
	if req.Msg.UserID == "" {
		return nil, toConnectError(fmt.Errorf("user %w", ErrMissingID))
	}

	if err := s.store.RemoveGroupMember(ctx, group.ID, req.Msg.UserID); err != nil {
		return nil, toConnectError(fmt.Errorf("member %s: %w", req.Msg.UserID, err))
	}

	s.logger.Info("Member removed", "group_id", group.ID, "user_id", req.Msg.UserID, "removed_by", userID)
	return connect.NewResponse(&api.RemoveMemberResponse{}), nil
}

// ListMembers returns a group's members in joining order.
func (s *GroupService) ListMembers(ctx context.Context, req *connect.Request[api.ListMembersRequest]) (*connect.Response[api.ListMembersResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	group, err := requireMember(ctx, s.store, req.Msg.GroupID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}
	members, err := s.store.ListGroupMembers(ctx, group.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListMembersResponse{Members: toAPIMembers(members)}), nil
}

// GetGroupBalances returns every member's balance and the suggested
// settlements for a group.
func (s *GroupService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GroupBalances], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	summary, err := s.Balances(ctx, req.Msg.GroupID, userID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(ToAPIBalances(summary)), nil
}

// Balances reads the group's ledger in one snapshot and summarizes it for
// userID, who must be a member. Errors are domain errors; use ErrorCode to
// classify them.
func (s *GroupService) Balances(ctx context.Context, groupID, userID string) (*models.GroupBalanceSummary, error) {
	if groupID == "" {
		return nil, fmt.Errorf("group %w", ErrMissingID)
	}
	ledger, err := s.store.GroupLedger(ctx, groupID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Error("Failed to read ledger", "group_id", groupID, "error", err)
		}
		return nil, fmt.Errorf("group %s: %w", groupID, err)
	}

	member := false
	for _, m := range ledger.Members {
		if m.UserID == userID {
			member = true
			break
		}
	}
	if !member {
		return nil, ErrNotMember
	}

	summary := Summarize(ledger)
	if s.observer != nil {
		s.observer.ObserveSettlements(len(summary.SuggestedSettlements))
	}

	s.logger.Debug("Balances computed",
		"group_id", groupID,
		"members", len(ledger.Members),
		"expenses", len(ledger.Expenses),
		"settlements", len(summary.SuggestedSettlements),
	)
	return summary, nil
}
