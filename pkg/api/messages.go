package api

// User is a registered account as seen by other users.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type RegisterResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

type GetUserRequest struct {
	UserID string `json:"userId"`
}

type GetUserResponse struct {
	User *User `json:"user"`
}

// UpdateProfileRequest changes the caller's own account. Empty fields are
// left unchanged.
type UpdateProfileRequest struct {
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
}

type UpdateProfileResponse struct {
	User *User `json:"user"`
}

// Group is a set of users sharing expenses.
type Group struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatorID string `json:"creatorId"`
	CreatedAt int64  `json:"createdAt"`
}

// Member is one user's membership in a group, listed in joining order.
type Member struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	JoinedAt int64  `json:"joinedAt"`
}

type CreateGroupRequest struct {
	Name string `json:"name"`
}

type CreateGroupResponse struct {
	Group   *Group    `json:"group"`
	Members []*Member `json:"members"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type GetGroupResponse struct {
	Group   *Group    `json:"group"`
	Members []*Member `json:"members"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type UpdateGroupRequest struct {
	GroupID string `json:"groupId"`
	Name    string `json:"name"`
}

type UpdateGroupResponse struct {
	Group *Group `json:"group"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type DeleteGroupResponse struct{}

// AddMemberRequest identifies the new member by UserID or, when that is
// empty, by Email.
type AddMemberRequest struct {
	GroupID string `json:"groupId"`
	UserID  string `json:"userId,omitempty"`
	Email   string `json:"email,omitempty"`
}

type AddMemberResponse struct {
	Member *Member `json:"member"`
}

type RemoveMemberRequest struct {
	GroupID string `json:"groupId"`
	UserID  string `json:"userId"`
}

type RemoveMemberResponse struct{}

type ListMembersRequest struct {
	GroupID string `json:"groupId"`
}

type ListMembersResponse struct {
	Members []*Member `json:"members"`
}

type GetGroupBalancesRequest struct {
	GroupID string `json:"groupId"`
}

// GroupBalances is the balance summary of a group. It is also the body of
// GET /groups/{groupId}/balances.
type GroupBalances struct {
	GroupID              string                 `json:"groupId"`
	GroupName            string                 `json:"groupName"`
	UserBalances         []*UserBalance         `json:"userBalances"`
	SuggestedSettlements []*SuggestedSettlement `json:"suggestedSettlements"`
}

// UserBalance is positive when the user is owed money.
type UserBalance struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Balance  Amount `json:"balance"`
}

type SuggestedSettlement struct {
	FromUserID   string `json:"fromUserId"`
	FromUserName string `json:"fromUserName"`
	ToUserID     string `json:"toUserId"`
	ToUserName   string `json:"toUserName"`
	Amount       Amount `json:"amount"`
}

// Expense is one payment with its per-participant shares.
type Expense struct {
	ID           string         `json:"id"`
	GroupID      string         `json:"groupId"`
	PayerID      string         `json:"payerId"`
	TotalAmount  Amount         `json:"totalAmount"`
	Description  string         `json:"description"`
	ExpenseDate  string         `json:"expenseDate"`
	Participants []*Participant `json:"participants"`
	CreatedAt    int64          `json:"createdAt"`
}

type Participant struct {
	UserID     string `json:"userId"`
	AmountOwed Amount `json:"amountOwed"`
}

// CreateEqualSplitRequest divides TotalAmount equally between ParticipantIDs.
// ExpenseDate is optional and defaults to today (UTC).
type CreateEqualSplitRequest struct {
	GroupID        string   `json:"groupId"`
	PayerID        string   `json:"payerId"`
	TotalAmount    Amount   `json:"totalAmount"`
	Description    string   `json:"description"`
	ExpenseDate    string   `json:"expenseDate,omitempty"`
	ParticipantIDs []string `json:"participantIds"`
}

// CreateCustomSplitRequest records explicit shares that must add up to
// TotalAmount.
type CreateCustomSplitRequest struct {
	GroupID      string         `json:"groupId"`
	PayerID      string         `json:"payerId"`
	TotalAmount  Amount         `json:"totalAmount"`
	Description  string         `json:"description"`
	ExpenseDate  string         `json:"expenseDate,omitempty"`
	Participants []*Participant `json:"participants"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListGroupExpensesRequest struct {
	GroupID string `json:"groupId"`
}

type ListGroupExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

// UpdateExpenseRequest changes descriptive fields only. Amounts and shares
// are fixed once recorded; delete and re-create the expense to change them.
type UpdateExpenseRequest struct {
	ExpenseID   string `json:"expenseId"`
	Description string `json:"description"`
	ExpenseDate string `json:"expenseDate,omitempty"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}
