package service

import (
	"github.com/mmynk/fairly/internal/models"
	"github.com/mmynk/fairly/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func toAPIGroup(g *models.Group) *api.Group {
	return &api.Group{
		ID:        g.ID,
		Name:      g.Name,
		CreatorID: g.CreatorID,
		CreatedAt: g.CreatedAt,
	}
}

func toAPIMembers(members []models.Member) []*api.Member {
	out := make([]*api.Member, len(members))
	for i, m := range members {
		out[i] = &api.Member{UserID: m.UserID, UserName: m.DisplayName, JoinedAt: m.JoinedAt}
	}
	return out
}

func toAPIExpense(e *models.Expense) *api.Expense {
	participants := make([]*api.Participant, len(e.Participants))
	for i, p := range e.Participants {
		participants[i] = &api.Participant{UserID: p.UserID, AmountOwed: api.NewAmount(p.AmountOwed)}
	}
	return &api.Expense{
		ID:           e.ID,
		GroupID:      e.GroupID,
		PayerID:      e.PayerID,
		TotalAmount:  api.NewAmount(e.TotalAmount),
		Description:  e.Description,
		ExpenseDate:  e.ExpenseDate,
		Participants: participants,
		CreatedAt:    e.CreatedAt,
	}
}

// ToAPIBalances renders a summary in its wire shape.
func ToAPIBalances(s *models.GroupBalanceSummary) *api.GroupBalances {
	out := &api.GroupBalances{
		GroupID:              s.GroupID,
		GroupName:            s.GroupName,
		UserBalances:         make([]*api.UserBalance, len(s.UserBalances)),
		SuggestedSettlements: make([]*api.SuggestedSettlement, len(s.SuggestedSettlements)),
	}
	for i, b := range s.UserBalances {
		out.UserBalances[i] = &api.UserBalance{
			UserID:   b.UserID,
			UserName: b.UserName,
			Balance:  api.NewAmount(b.Balance),
		}
	}
	for i, st := range s.SuggestedSettlements {
		out.SuggestedSettlements[i] = &api.SuggestedSettlement{
			FromUserID:   st.FromUserID,
			FromUserName: st.FromUserName,
			ToUserID:     st.ToUserID,
			ToUserName:   st.ToUserName,
			Amount:       api.NewAmount(st.Amount),
		}
	}
	return out
}
