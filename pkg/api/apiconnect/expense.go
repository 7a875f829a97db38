package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/fairly/pkg/api"
)

const ExpenseServiceName = "fairly.v1.ExpenseService"

const (
	ExpenseServiceCreateEqualSplitProcedure  = "/fairly.v1.ExpenseService/CreateEqualSplit"
	ExpenseServiceCreateCustomSplitProcedure = "/fairly.v1.ExpenseService/CreateCustomSplit"
	ExpenseServiceGetExpenseProcedure        = "/fairly.v1.ExpenseService/GetExpense"
	ExpenseServiceListGroupExpensesProcedure = "/fairly.v1.ExpenseService/ListGroupExpenses"
	ExpenseServiceUpdateExpenseProcedure     = "/fairly.v1.ExpenseService/UpdateExpense"
	ExpenseServiceDeleteExpenseProcedure     = "/fairly.v1.ExpenseService/DeleteExpense"
)

// ExpenseServiceHandler is implemented by the server side of ExpenseService.
type ExpenseServiceHandler interface {
	CreateEqualSplit(context.Context, *connect.Request[api.CreateEqualSplitRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	CreateCustomSplit(context.Context, *connect.Request[api.CreateCustomSplitRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	ListGroupExpenses(context.Context, *connect.Request[api.ListGroupExpensesRequest]) (*connect.Response[api.ListGroupExpensesResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
}

// NewExpenseServiceHandler returns the mount path and handler for svc.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		ExpenseServiceCreateEqualSplitProcedure:  connect.NewUnaryHandler(ExpenseServiceCreateEqualSplitProcedure, svc.CreateEqualSplit, opts...),
		ExpenseServiceCreateCustomSplitProcedure: connect.NewUnaryHandler(ExpenseServiceCreateCustomSplitProcedure, svc.CreateCustomSplit, opts...),
		ExpenseServiceGetExpenseProcedure:        connect.NewUnaryHandler(ExpenseServiceGetExpenseProcedure, svc.GetExpense, opts...),
		ExpenseServiceListGroupExpensesProcedure: connect.NewUnaryHandler(ExpenseServiceListGroupExpensesProcedure, svc.ListGroupExpenses, opts...),
		ExpenseServiceUpdateExpenseProcedure:     connect.NewUnaryHandler(ExpenseServiceUpdateExpenseProcedure, svc.UpdateExpense, opts...),
		ExpenseServiceDeleteExpenseProcedure:     connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...),
	}
	return "/" + ExpenseServiceName + "/", route(handlers)
}

// ExpenseServiceClient calls ExpenseService.
type ExpenseServiceClient interface {
	ExpenseServiceHandler
}

// NewExpenseServiceClient builds a client for the server at baseURL.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ExpenseServiceClient {
	baseURL = trimBaseURL(baseURL)
	opts = clientOptions(opts)
	return &expenseServiceClient{
		createEqualSplit:  connect.NewClient[api.CreateEqualSplitRequest, api.CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateEqualSplitProcedure, opts...),
		createCustomSplit: connect.NewClient[api.CreateCustomSplitRequest, api.CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateCustomSplitProcedure, opts...),
		getExpense:        connect.NewClient[api.GetExpenseRequest, api.GetExpenseResponse](httpClient, baseURL+ExpenseServiceGetExpenseProcedure, opts...),
		listGroupExpenses: connect.NewClient[api.ListGroupExpensesRequest, api.ListGroupExpensesResponse](httpClient, baseURL+ExpenseServiceListGroupExpensesProcedure, opts...),
		updateExpense:     connect.NewClient[api.UpdateExpenseRequest, api.UpdateExpenseResponse](httpClient, baseURL+ExpenseServiceUpdateExpenseProcedure, opts...),
		deleteExpense:     connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...),
	}
}

type expenseServiceClient struct {
	createEqualSplit  *connect.Client[api.CreateEqualSplitRequest, api.CreateExpenseResponse]
	createCustomSplit *connect.Client[api.CreateCustomSplitRequest, api.CreateExpenseResponse]
	getExpense        *connect.Client[api.GetExpenseRequest, api.GetExpenseResponse]
	listGroupExpenses *connect.Client[api.ListGroupExpensesRequest, api.ListGroupExpensesResponse]
	updateExpense     *connect.Client[api.UpdateExpenseRequest, api.UpdateExpenseResponse]
	deleteExpense     *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
}

func (c *expenseServiceClient) CreateEqualSplit(ctx context.Context, req *connect.Request[api.CreateEqualSplitRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return c.createEqualSplit.CallUnary(ctx, req)
}

func (c *expenseServiceClient) CreateCustomSplit(ctx context.Context, req *connect.Request[api.CreateCustomSplitRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return c.createCustomSplit.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListGroupExpenses(ctx context.Context, req *connect.Request[api.ListGroupExpensesRequest]) (*connect.Response[api.ListGroupExpensesResponse], error) {
	return c.listGroupExpenses.CallUnary(ctx, req)
}

func (c *expenseServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}
