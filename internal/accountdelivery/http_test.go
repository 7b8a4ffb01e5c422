package accountdelivery

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/go-petr/pet-ledger/internal/domain"
	"github.com/go-petr/pet-ledger/internal/integrationtest/helpers"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/pkg/errorspkg"
	"github.com/go-petr/pet-ledger/pkg/moneypkg"
	"github.com/go-petr/pet-ledger/pkg/randompkg"
	"github.com/go-petr/pet-ledger/pkg/tokenpkg"
	"github.com/go-petr/pet-ledger/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("amount", moneypkg.ValidAmount); err != nil {
			panic(err)
		}
	}

	os.Exit(m.Run())
}

func newTokenMaker(t *testing.T) tokenpkg.Maker {
	t.Helper()

	tokenSymmetricKey := randompkg.String(32)

	tokenMaker, err := tokenpkg.NewPasetoMaker(tokenSymmetricKey)
	if err != nil {
		t.Fatalf("tokenpkg.NewPasetoMaker(%v) returned error: %v", tokenSymmetricKey, err)
	}

	return tokenMaker
}

func newServer(t *testing.T, tokenMaker tokenpkg.Maker, buildStubs func(s *MockService)) *gin.Engine {
	t.Helper()

	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	buildStubs(service)

	h := NewHandler(service)

	server := gin.New()
	authRoutes := server.Group("/", middleware.AuthMiddleware(tokenMaker))
	authRoutes.GET("/clients/:id/accounts", h.ListForClient)
	authRoutes.POST("/clients/:id/accounts", h.Open)
	authRoutes.GET("/accounts/:id", h.Get)
	authRoutes.POST("/accounts/:id/charges", h.Charge)
	authRoutes.POST("/accounts/:id/payments", h.Pay)
	authRoutes.POST("/accounts/:id/close", h.Close)
	authRoutes.GET("/accounts/:id/entries", h.ListEntries)

	return server
}

func sendRequest(t *testing.T, server *gin.Engine, tokenMaker tokenpkg.Maker, method, url string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload []byte

	if body != nil {
		var err error

		payload, err = json.Marshal(body)
		if err != nil {
			t.Fatalf("Encoding request body error: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("Creating request error: %v", err)
	}

	if err := middleware.AddAuthorization(req, tokenMaker, middleware.AuthTypeBearer, "admin", time.Minute); err != nil {
		t.Fatalf("middleware.AddAuthorization returned error: %v", err)
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	return recorder
}

func checkAccountResponse(t *testing.T, recorder *httptest.ResponseRecorder, wantStatusCode int, wantError string, want domain.Account) {
	t.Helper()

	if got := recorder.Code; got != wantStatusCode {
		t.Errorf("Status code: got %v, want %v", got, wantStatusCode)
	}

	got := &struct {
		Account domain.Account `json:"account"`
	}{}

	res := web.Response{Data: got}
	if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
		t.Fatalf("Decoding response body error: %v", err)
	}

	if wantStatusCode != http.StatusOK {
		if res.Error != wantError {
			t.Errorf(`resp.Error=%q, want %q`, res.Error, wantError)
		}

		return
	}

	if diff := cmp.Diff(want, got.Account, cmpopts.EquateApproxTime(time.Second)); diff != "" {
		t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
	}
}

func TestOpen(t *testing.T) {
	clientID := uuid.NewString()
	account := helpers.RandomAccount(clientID)
	account.Balance = decimal.Zero
	tokenMaker := newTokenMaker(t)

	testCases := []struct {
		name           string
		clientID       string
		buildStubs     func(s *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name:     "OK",
			clientID: clientID,
			buildStubs: func(s *MockService) {
				s.EXPECT().OpenAccount(gomock.Any(), gomock.Eq(clientID)).Times(1).Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:     "ActiveAccountExists",
			clientID: clientID,
			buildStubs: func(s *MockService) {
				s.EXPECT().OpenAccount(gomock.Any(), gomock.Eq(clientID)).Times(1).Return(domain.Account{}, domain.ErrActiveAccountExists)
			},
			wantStatusCode: http.StatusConflict,
			wantError:      domain.ErrActiveAccountExists.Error(),
		},
		{
			name:     "ClientNotFound",
			clientID: clientID,
			buildStubs: func(s *MockService) {
				s.EXPECT().OpenAccount(gomock.Any(), gomock.Eq(clientID)).Times(1).Return(domain.Account{}, domain.ErrClientNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrClientNotFound.Error(),
		},
		{
			name:     "InvalidClientID",
			clientID: "abc",
			buildStubs: func(s *MockService) {
				s.EXPECT().OpenAccount(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "ID must be a valid id",
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := newServer(t, tokenMaker, tc.buildStubs)
			recorder := sendRequest(t, server, tokenMaker, http.MethodPost, "/clients/"+tc.clientID+"/accounts", nil)
			checkAccountResponse(t, recorder, tc.wantStatusCode, tc.wantError, account)
		})
	}
}

func TestGet(t *testing.T) {
	account := helpers.RandomAccount(uuid.NewString())
	tokenMaker := newTokenMaker(t)

	testCases := []struct {
		name           string
		id             string
		buildStubs     func(s *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OK",
			id:   account.ID,
			buildStubs: func(s *MockService) {
				s.EXPECT().GetAccount(gomock.Any(), gomock.Eq(account.ID)).Times(1).Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "NotFound",
			id:   account.ID,
			buildStubs: func(s *MockService) {
				s.EXPECT().GetAccount(gomock.Any(), gomock.Eq(account.ID)).Times(1).Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrAccountNotFound.Error(),
		},
		{
			name: "InternalServerError",
			id:   account.ID,
			buildStubs: func(s *MockService) {
				s.EXPECT().GetAccount(gomock.Any(), gomock.Eq(account.ID)).Times(1).Return(domain.Account{}, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantError:      errorspkg.ErrInternal.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := newServer(t, tokenMaker, tc.buildStubs)
			recorder := sendRequest(t, server, tokenMaker, http.MethodGet, "/accounts/"+tc.id, nil)
			checkAccountResponse(t, recorder, tc.wantStatusCode, tc.wantError, account)
		})
	}
}

func TestChargeAndPay(t *testing.T) {
	account := helpers.RandomAccount(uuid.NewString())
	tokenMaker := newTokenMaker(t)

	type requestBody struct {
		Amount string `json:"amount"`
	}

	testCases := []struct {
		name           string
		path           string
		requestBody    any
		buildStubs     func(s *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name:        "ChargeOK",
			path:        "/charges",
			requestBody: requestBody{Amount: "49.90"},
			buildStubs: func(s *MockService) {
				req := domain.ChargeRequest{AccountID: account.ID, Amount: decimal.RequireFromString("49.90")}
				s.EXPECT().ApplyCharge(gomock.Any(), gomock.Eq(req)).Times(1).Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:        "PaymentOK",
			path:        "/payments",
			requestBody: requestBody{Amount: "10"},
			buildStubs: func(s *MockService) {
				req := domain.PaymentRequest{AccountID: account.ID, Amount: decimal.RequireFromString("10")}
				s.EXPECT().ApplyPayment(gomock.Any(), gomock.Eq(req)).Times(1).Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:        "MissingAmount",
			path:        "/charges",
			requestBody: requestBody{},
			buildStubs: func(s *MockService) {
				s.EXPECT().ApplyCharge(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Amount field is required",
		},
		{
			name:        "NegativeAmount",
			path:        "/payments",
			requestBody: requestBody{Amount: "-5"},
			buildStubs: func(s *MockService) {
				s.EXPECT().ApplyPayment(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Amount must be a positive decimal with at most 2 decimal places",
		},
		{
			name:        "TooManyDecimals",
			path:        "/charges",
			requestBody: requestBody{Amount: "1.001"},
			buildStubs: func(s *MockService) {
				s.EXPECT().ApplyCharge(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Amount must be a positive decimal with at most 2 decimal places",
		},
		{
			name:        "ExponentNotation",
			path:        "/charges",
			requestBody: requestBody{Amount: "1e400"},
			buildStubs: func(s *MockService) {
				s.EXPECT().ApplyCharge(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Amount must be a positive decimal with at most 2 decimal places",
		},
		{
			name:        "AboveMaximum",
			path:        "/payments",
			requestBody: requestBody{Amount: "1000000000.01"},
			buildStubs: func(s *MockService) {
				s.EXPECT().ApplyPayment(gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantError:      "Amount must be a positive decimal with at most 2 decimal places",
		},
		{
			name:        "ClosedAccount",
			path:        "/charges",
			requestBody: requestBody{Amount: "10"},
			buildStubs: func(s *MockService) {
				s.EXPECT().ApplyCharge(gomock.Any(), gomock.Any()).Times(1).Return(domain.Account{}, domain.ErrAccountNotActive)
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      domain.ErrAccountNotActive.Error(),
		},
		{
			name:        "AccountNotFound",
			path:        "/payments",
			requestBody: requestBody{Amount: "10"},
			buildStubs: func(s *MockService) {
				s.EXPECT().ApplyPayment(gomock.Any(), gomock.Any()).Times(1).Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantError:      domain.ErrAccountNotFound.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := newServer(t, tokenMaker, tc.buildStubs)
			recorder := sendRequest(t, server, tokenMaker, http.MethodPost, "/accounts/"+account.ID+tc.path, tc.requestBody)
			checkAccountResponse(t, recorder, tc.wantStatusCode, tc.wantError, account)
		})
	}
}

func TestClose(t *testing.T) {
	account := helpers.RandomAccount(uuid.NewString())
	closedAt := account.OpenedAt.Add(time.Hour)
	account.Status = domain.AccountClosed
	account.ClosedAt = &closedAt
	tokenMaker := newTokenMaker(t)

	testCases := []struct {
		name           string
		requestBody    any
		buildStubs     func(s *MockService)
		wantStatusCode int
		wantError      string
	}{
		{
			name: "OKWithoutBody",
			buildStubs: func(s *MockService) {
				req := domain.CloseRequest{AccountID: account.ID}
				s.EXPECT().CloseAccount(gomock.Any(), gomock.Eq(req)).Times(1).Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:        "OKWriteOff",
			requestBody: map[string]bool{"write_off": true},
			buildStubs: func(s *MockService) {
				req := domain.CloseRequest{AccountID: account.ID, WriteOff: true}
				s.EXPECT().CloseAccount(gomock.Any(), gomock.Eq(req)).Times(1).Return(account, nil)
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "OutstandingBalance",
			buildStubs: func(s *MockService) {
				s.EXPECT().CloseAccount(gomock.Any(), gomock.Any()).Times(1).Return(domain.Account{}, domain.ErrOutstandingBalance)
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      domain.ErrOutstandingBalance.Error(),
		},
		{
			name: "AlreadyClosed",
			buildStubs: func(s *MockService) {
				s.EXPECT().CloseAccount(gomock.Any(), gomock.Any()).Times(1).Return(domain.Account{}, domain.ErrAccountNotActive)
			},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      domain.ErrAccountNotActive.Error(),
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := newServer(t, tokenMaker, tc.buildStubs)
			recorder := sendRequest(t, server, tokenMaker, http.MethodPost, "/accounts/"+account.ID+"/close", tc.requestBody)
			checkAccountResponse(t, recorder, tc.wantStatusCode, tc.wantError, account)
		})
	}
}

func TestListForClientAndEntries(t *testing.T) {
	clientID := uuid.NewString()
	accounts := []domain.Account{helpers.RandomAccount(clientID), helpers.RandomAccount(clientID)}
	entries := []domain.Entry{
		{
			ID:           1,
			AccountID:    accounts[0].ID,
			Kind:         domain.EntryCharge,
			Amount:       decimal.NewFromInt(30),
			BalanceAfter: decimal.NewFromInt(30),
			CreatedAt:    helpers.Now(),
		},
	}
	tokenMaker := newTokenMaker(t)

	t.Run("Accounts", func(t *testing.T) {
		t.Parallel()

		server := newServer(t, tokenMaker, func(s *MockService) {
			s.EXPECT().ListClientAccounts(gomock.Any(), gomock.Eq(clientID)).Times(1).Return(accounts, nil)
		})

		recorder := sendRequest(t, server, tokenMaker, http.MethodGet, "/clients/"+clientID+"/accounts", nil)
		if recorder.Code != http.StatusOK {
			t.Fatalf("Status code: got %v, want %v", recorder.Code, http.StatusOK)
		}

		got := &struct {
			Accounts []domain.Account `json:"accounts"`
		}{}
		if err := json.NewDecoder(recorder.Body).Decode(&web.Response{Data: got}); err != nil {
			t.Fatalf("Decoding response body error: %v", err)
		}

		if diff := cmp.Diff(accounts, got.Accounts, cmpopts.EquateApproxTime(time.Second)); diff != "" {
			t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Entries", func(t *testing.T) {
		t.Parallel()

		server := newServer(t, tokenMaker, func(s *MockService) {
			s.EXPECT().ListEntries(gomock.Any(), gomock.Eq(accounts[0].ID)).Times(1).Return(entries, nil)
		})

		recorder := sendRequest(t, server, tokenMaker, http.MethodGet, "/accounts/"+accounts[0].ID+"/entries", nil)
		if recorder.Code != http.StatusOK {
			t.Fatalf("Status code: got %v, want %v", recorder.Code, http.StatusOK)
		}

		got := &struct {
			Entries []domain.Entry `json:"entries"`
		}{}
		if err := json.NewDecoder(recorder.Body).Decode(&web.Response{Data: got}); err != nil {
			t.Fatalf("Decoding response body error: %v", err)
		}

		if diff := cmp.Diff(entries, got.Entries, cmpopts.EquateApproxTime(time.Second)); diff != "" {
			t.Errorf("res.Data mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("EntriesOfUnknownAccount", func(t *testing.T) {
		t.Parallel()

		id := uuid.NewString()
		server := newServer(t, tokenMaker, func(s *MockService) {
			s.EXPECT().ListEntries(gomock.Any(), gomock.Eq(id)).Times(1).Return(nil, domain.ErrAccountNotFound)
		})

		recorder := sendRequest(t, server, tokenMaker, http.MethodGet, "/accounts/"+id+"/entries", nil)
		if recorder.Code != http.StatusNotFound {
			t.Errorf("Status code: got %v, want %v", recorder.Code, http.StatusNotFound)
		}
	})
}
