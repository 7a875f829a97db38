package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_MarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10", "10.00"},
		{"-3.33", "-3.33"},
		{"0", "0.00"},
		{"6.5", "6.50"},
		{"6.665", "6.665"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			data, err := json.Marshal(MustAmount(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	var msg struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 12.5, "b": "7.25"}`), &msg))
	assert.Equal(t, "12.50", msg.A.String())
	assert.Equal(t, "7.25", msg.B.String())

	assert.Error(t, json.Unmarshal([]byte(`{"a": "twelve"}`), &msg))
}

func TestGroupBalances_JSONShape(t *testing.T) {
	body := GroupBalances{
		GroupID:   "g1",
		GroupName: "Trip",
		UserBalances: []*UserBalance{
			{UserID: "a", UserName: "Alice", Balance: MustAmount("20")},
		},
		SuggestedSettlements: []*SuggestedSettlement{
			{FromUserID: "b", FromUserName: "Bob", ToUserID: "a", ToUserName: "Alice", Amount: MustAmount("20")},
		},
	}

	data, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"groupId": "g1",
		"groupName": "Trip",
		"userBalances": [{"userId": "a", "userName": "Alice", "balance": 20.00}],
		"suggestedSettlements": [{"fromUserId": "b", "fromUserName": "Bob", "toUserId": "a", "toUserName": "Alice", "amount": 20.00}]
	}`, string(data))
	assert.Contains(t, string(data), `"balance":20.00`)
}

func TestJSONCodec(t *testing.T) {
	codec := JSONCodec{}
	assert.Equal(t, "json", codec.Name())

	data, err := codec.Marshal(&GetGroupRequest{GroupID: "g1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"groupId":"g1"}`, string(data))

	var req GetGroupRequest
	require.NoError(t, codec.Unmarshal(data, &req))
	assert.Equal(t, "g1", req.GroupID)

	var empty ListGroupsRequest
	assert.NoError(t, codec.Unmarshal(nil, &empty))
	assert.Error(t, codec.Unmarshal([]byte("{"), &req))
}
